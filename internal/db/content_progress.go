package db

import "time"

// ContentProgress 记录内容单元的完成时间
// 每个内容单元最多一行，重复完成保持首次完成时间
type ContentProgress struct {
	ContentID   string `gorm:"primaryKey;size:64"`
	CompletedAt time.Time
}

// TableName 与备份映射中的 content_progress 对齐
func (ContentProgress) TableName() string {
	return "content_progress"
}
