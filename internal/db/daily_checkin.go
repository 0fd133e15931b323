package db

import "time"

// DailyCheckin 记录每日签到
// Date 为设备本地日历日（YYYY-MM-DD），唯一索引保证每天最多一条
// Mood/Fatigue/Urge 均为 1-5 评分
// Note 为自由文本，备份会完整导出，但遥测链路永远不得上报
type DailyCheckin struct {
	ID          string `gorm:"primaryKey;size:36"`
	Date        string `gorm:"uniqueIndex;size:10"`
	Mood        int
	Fatigue     int
	Urge        int
	Note        *string
	NightUse    *bool
	SpendFlag   *bool
	SpendAmount *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 备份文件中的逻辑名为 daily_checkins，底层表为单数
func (DailyCheckin) TableName() string {
	return "daily_checkin"
}
