package db

import "time"

// SingletonID 是 user_profile 与 subscription_state 的固定主键。
// 两张表在存储层仍是普通表，只是约定最多只有一行。
const SingletonID uint = 1

// UserProfile 定义了用户档案模型
// 本地单用户应用，全表最多一行，主键固定为 SingletonID
type UserProfile struct {
	ID                uint `gorm:"primaryKey"`
	Locale            string
	GoalType          string
	NotificationStyle string
	CreatedAt         time.Time
}

// TableName 保持与备份映射一致的单数表名
func (UserProfile) TableName() string {
	return "user_profile"
}
