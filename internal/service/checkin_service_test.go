package service

import (
	"errors"
	"testing"
)

func TestCheckinUpsertAmendsSameDate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCheckinService(gdb, fixedClock(t, "2026-02-18"))

	first, err := svc.Upsert(CheckinInput{Mood: 3, Fatigue: 2, Urge: 4})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if first.Date != "2026-02-18" {
		t.Fatalf("expected date from clock, got %s", first.Date)
	}

	// 同一天补记：更新评分而不是新增行
	note := "晚上状态变差"
	second, err := svc.Upsert(CheckinInput{Mood: 2, Fatigue: 4, Urge: 5, Note: &note})
	if err != nil {
		t.Fatalf("Upsert amend returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected amend to keep row identity, got %s and %s", first.ID, second.ID)
	}
	if second.Mood != 2 || second.Note == nil || *second.Note != note {
		t.Fatalf("expected amended values, got %+v", second)
	}

	if got := tableCount(t, gdb, "daily_checkin"); got != 1 {
		t.Fatalf("expected single checkin row, got %d", got)
	}
}

func TestCheckinRejectsInvalidRating(t *testing.T) {
	svc := NewCheckinService(setupServiceTestDB(t), fixedClock(t, "2026-02-18"))

	if _, err := svc.Upsert(CheckinInput{Mood: 0, Fatigue: 3, Urge: 3}); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected rating error, got %v", err)
	}
	if _, err := svc.Upsert(CheckinInput{Mood: 3, Fatigue: 6, Urge: 3}); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected rating error, got %v", err)
	}
}

func TestCheckinGetByDateNotFound(t *testing.T) {
	svc := NewCheckinService(setupServiceTestDB(t), fixedClock(t, "2026-02-18"))

	if _, err := svc.GetByDate("2026-01-01"); !errors.Is(err, ErrCheckinNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCheckinListBetween(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCheckinService(gdb, fixedClock(t, "2026-02-18"))

	for _, date := range []string{"2026-02-15", "2026-02-16", "2026-02-18"} {
		if _, err := svc.Upsert(CheckinInput{Date: date, Mood: 3, Fatigue: 3, Urge: 3}); err != nil {
			t.Fatalf("failed to seed checkin %s: %v", date, err)
		}
	}

	records, err := svc.ListBetween("2026-02-15", "2026-02-17")
	if err != nil {
		t.Fatalf("ListBetween returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 checkins in range, got %d", len(records))
	}
	if records[0].Date != "2026-02-15" || records[1].Date != "2026-02-16" {
		t.Fatalf("unexpected order: %+v", records)
	}
}
