package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
)

func TestApplyEventCounters(t *testing.T) {
	gdb := setupServiceTestDB(t)
	clock := fixedClock(t, "2026-02-18")

	urges := NewUrgeService(gdb, clock)
	progress := NewProgressService(gdb, clock)

	event, err := urges.Log(UrgeInput{Level: 3, Kind: "swipe", Outcome: "success"})
	if err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	record, err := progress.ApplyEvent(event)
	if err != nil {
		t.Fatalf("ApplyEvent returned error: %v", err)
	}

	if record.ResistTotal != 1 || record.SpendAvoidedTotal != 0 {
		t.Fatalf("unexpected counters after success: %+v", record)
	}
	if record.Rank != domain.RankStart {
		t.Fatalf("expected start rank, got %d", record.Rank)
	}
	if record.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", record.Streak)
	}
	if record.LastSuccessDate == nil || *record.LastSuccessDate != "2026-02-18" {
		t.Fatalf("unexpected last success date: %+v", record.LastSuccessDate)
	}

	// 失败不增加任何累计，也不撤销已成立的成功日
	event, err = urges.Log(UrgeInput{Level: 5, Kind: "swipe", Outcome: "fail"})
	if err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	record, err = progress.ApplyEvent(event)
	if err != nil {
		t.Fatalf("ApplyEvent returned error: %v", err)
	}
	if record.ResistTotal != 1 || record.Streak != 1 {
		t.Fatalf("expected fail to leave counters untouched, got %+v", record)
	}

	// 消费类成功同时累计两个计数
	event, err = urges.Log(UrgeInput{Level: 4, Kind: "spend", Outcome: "success"})
	if err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	record, err = progress.ApplyEvent(event)
	if err != nil {
		t.Fatalf("ApplyEvent returned error: %v", err)
	}
	if record.ResistTotal != 2 || record.SpendAvoidedTotal != 1 {
		t.Fatalf("unexpected counters after spend success: %+v", record)
	}

	// 同一天只保留一条快照
	if got := tableCount(t, gdb, "progress"); got != 1 {
		t.Fatalf("expected single progress row, got %d", got)
	}
}

func TestApplyEventStreakAcrossDays(t *testing.T) {
	gdb := setupServiceTestDB(t)
	clock := fixedClock(t, "2026-02-18")

	// 前三天各有一次成功抵抗
	for day := 15; day <= 17; day++ {
		event := db.UrgeEvent{
			ID:        fmt.Sprintf("seed-%d", day),
			StartedAt: time.Date(2026, 2, day, 9, 0, 0, 0, time.Local),
			Level:     3,
			Kind:      domain.KindSwipe,
			Outcome:   domain.OutcomeSuccess,
		}
		if err := gdb.Create(&event).Error; err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	urges := NewUrgeService(gdb, clock)
	progress := NewProgressService(gdb, clock)

	event, err := urges.Log(UrgeInput{Level: 2, Kind: "swipe", Outcome: "success"})
	if err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	record, err := progress.ApplyEvent(event)
	if err != nil {
		t.Fatalf("ApplyEvent returned error: %v", err)
	}

	if record.Streak != 4 {
		t.Fatalf("expected streak 4, got %d", record.Streak)
	}
}

func TestContentCompletionMakesDaySuccess(t *testing.T) {
	gdb := setupServiceTestDB(t)
	clock := fixedClock(t, "2026-02-18")

	if _, err := NewContentService(gdb, clock).MarkCompleted("lesson-01"); err != nil {
		t.Fatalf("failed to complete content: %v", err)
	}

	record, err := NewProgressService(gdb, clock).ApplyContentCompletion()
	if err != nil {
		t.Fatalf("ApplyContentCompletion returned error: %v", err)
	}

	if record.Streak != 1 {
		t.Fatalf("expected content completion to make today a success day, got streak %d", record.Streak)
	}
	if record.ResistTotal != 0 {
		t.Fatalf("expected resist total unchanged, got %d", record.ResistTotal)
	}
}

func TestLatestReturnsNilOnEmptyStore(t *testing.T) {
	gdb := setupServiceTestDB(t)
	progress := NewProgressService(gdb, fixedClock(t, "2026-02-18"))

	record, err := progress.Latest()
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil progress on empty store, got %+v", record)
	}
}
