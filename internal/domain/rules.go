package domain

// 冲动事件的类别与结果取值。
const (
	KindSwipe = "swipe"
	KindCheck = "check"
	KindSpend = "spend"

	OutcomeSuccess = "success"
	OutcomeOngoing = "ongoing"
	OutcomeFail    = "fail"
)

// 段位推导参数：每 ResistsPerLevel 次成功抵抗升一级，
// 从 RankStart 起步并封顶于 RankCap。
const (
	RankStart       = 1
	RankCap         = 30
	ResistsPerLevel = 10
)

// CalculateRank 由累计成功抵抗次数推导段位。
// 负数输入一律返回起始段位；段位随累计值单调不减且永不超过上限。
func CalculateRank(lifetimeResistTotal int) int {
	if lifetimeResistTotal < 0 {
		return RankStart
	}

	rank := lifetimeResistTotal/ResistsPerLevel + RankStart
	if rank > RankCap {
		return RankCap
	}
	return rank
}

// IsDaySuccess 判定某日是否为成功日：
// 当天至少一次成功抵抗，或完成了当日内容任务。
func IsDaySuccess(successCountThatDay int, dailyTaskCompleted bool) bool {
	return successCountThatDay >= 1 || dailyTaskCompleted
}

// CalculateStreak 从 today（含）向前数连续成功日，遇到第一个空缺停止。
// today 本身不是成功日时返回 0。
func CalculateStreak(successDates map[Date]bool, today Date) int {
	streak := 0
	for day := today; successDates[day]; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// ShouldIncrementResist 仅在结果为 success 时允许累计抵抗计数。
func ShouldIncrementResist(outcome string) bool {
	return outcome == OutcomeSuccess
}

// ShouldIncrementSpendAvoided 仅在消费类冲动且结果为 success 时累计省钱计数。
func ShouldIncrementSpendAvoided(urgeKind, outcome string) bool {
	return urgeKind == KindSpend && outcome == OutcomeSuccess
}
