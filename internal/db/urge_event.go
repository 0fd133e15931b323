package db

import "time"

// UrgeEvent 记录一次冲动事件
// Kind 取值 swipe/check/spend，Outcome 取值 success/ongoing/fail
// Spend* 三个字段仅在 Kind=spend 时有意义
// Trigger 为用户可选的诱因标签
// 行一经创建不再原地修改，仅会被整体清空或导入替换
type UrgeEvent struct {
	ID            string `gorm:"primaryKey;size:36"`
	StartedAt     time.Time
	Screen        string
	Level         int
	Kind          string
	Completed     bool
	Action        string
	Outcome       string
	Trigger       *string
	SpendCategory *string
	SpendItem     *string
	SpendAmount   *float64
	CreatedAt     time.Time
}

// TableName 备份文件中的逻辑名为 urge_events，底层表为单数
func (UrgeEvent) TableName() string {
	return "urge_event"
}
