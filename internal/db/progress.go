package db

import "time"

// ProgressRecord 按日保存的进度快照
// ResistTotal/SpendAvoidedTotal 为累计计数，Rank 由规则引擎推导
// LastSuccessDate 记录最近一个成功日，便于断签判断
// 每次事件后整体重算并按日期 upsert
type ProgressRecord struct {
	Date              string `gorm:"primaryKey;size:10"`
	Streak            int
	ResistTotal       int
	Rank              int
	LastSuccessDate   *string
	SpendAvoidedTotal int
	UpdatedAt         time.Time
}

// TableName 与备份映射中的 progress 对齐
func (ProgressRecord) TableName() string {
	return "progress"
}
