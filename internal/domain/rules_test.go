package domain

import "testing"

func TestCalculateRank(t *testing.T) {
	if got := CalculateRank(-5); got != RankStart {
		t.Fatalf("expected negative input to return start rank, got %d", got)
	}

	if got := CalculateRank(0); got != RankStart {
		t.Fatalf("expected rank %d for zero resists, got %d", RankStart, got)
	}

	if got := CalculateRank(ResistsPerLevel); got != RankStart+1 {
		t.Fatalf("expected rank %d after one level, got %d", RankStart+1, got)
	}

	if got := CalculateRank(1000000); got != RankCap {
		t.Fatalf("expected rank capped at %d, got %d", RankCap, got)
	}
}

func TestCalculateRankMonotonic(t *testing.T) {
	previous := 0
	for total := 0; total <= ResistsPerLevel*(RankCap+2); total++ {
		rank := CalculateRank(total)
		if rank < previous {
			t.Fatalf("rank decreased from %d to %d at total %d", previous, rank, total)
		}
		if rank > RankCap {
			t.Fatalf("rank %d exceeds cap at total %d", rank, total)
		}
		previous = rank
	}
}

func TestIsDaySuccess(t *testing.T) {
	if IsDaySuccess(0, false) {
		t.Fatal("expected no success without resists or task")
	}
	if !IsDaySuccess(1, false) {
		t.Fatal("expected success with one resist")
	}
	if !IsDaySuccess(0, true) {
		t.Fatal("expected success with completed task")
	}
}

func TestCalculateStreak(t *testing.T) {
	dates := map[Date]bool{}
	for day := 15; day <= 18; day++ {
		dates[Date{Year: 2026, Month: 2, Day: day}] = true
	}

	if got := CalculateStreak(dates, Date{Year: 2026, Month: 2, Day: 18}); got != 4 {
		t.Fatalf("expected streak 4, got %d", got)
	}

	// 今天不是成功日则连胜归零
	if got := CalculateStreak(dates, Date{Year: 2026, Month: 2, Day: 19}); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}

	if got := CalculateStreak(map[Date]bool{}, Date{Year: 2026, Month: 2, Day: 18}); got != 0 {
		t.Fatalf("expected streak 0 for empty set, got %d", got)
	}
}

func TestCalculateStreakStopsAtGap(t *testing.T) {
	dates := map[Date]bool{
		{Year: 2026, Month: 3, Day: 1}: true,
		{Year: 2026, Month: 3, Day: 3}: true,
		{Year: 2026, Month: 3, Day: 4}: true,
	}

	if got := CalculateStreak(dates, Date{Year: 2026, Month: 3, Day: 4}); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestCalculateStreakAcrossMonthBoundary(t *testing.T) {
	dates := map[Date]bool{
		{Year: 2026, Month: 2, Day: 28}: true,
		{Year: 2026, Month: 3, Day: 1}:  true,
	}

	if got := CalculateStreak(dates, Date{Year: 2026, Month: 3, Day: 1}); got != 2 {
		t.Fatalf("expected streak 2 across month boundary, got %d", got)
	}
}

func TestCounterGuards(t *testing.T) {
	if !ShouldIncrementResist(OutcomeSuccess) {
		t.Fatal("success outcome must increment resist counter")
	}
	if ShouldIncrementResist(OutcomeFail) || ShouldIncrementResist(OutcomeOngoing) {
		t.Fatal("fail/ongoing outcomes must not increment resist counter")
	}

	if !ShouldIncrementSpendAvoided(KindSpend, OutcomeSuccess) {
		t.Fatal("spend success must increment spend-avoided counter")
	}
	if ShouldIncrementSpendAvoided(KindSwipe, OutcomeSuccess) {
		t.Fatal("non-spend success must not increment spend-avoided counter")
	}
	if ShouldIncrementSpendAvoided(KindSpend, OutcomeFail) {
		t.Fatal("spend fail must not increment spend-avoided counter")
	}
}
