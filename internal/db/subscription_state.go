package db

import "time"

// SubscriptionState 保存订阅同步结果
// 单行表，主键固定为 SingletonID，每次同步整行替换
// Status 由购买提供方给出（如 active/expired/trial）
type SubscriptionState struct {
	ID            uint `gorm:"primaryKey"`
	Status        string
	ProductID     string
	BillingPeriod string
	StartedAt     *time.Time
	ExpiresAt     *time.Time
	UpdatedAt     time.Time
}

// TableName 与备份映射中的 subscription_state 对齐
func (SubscriptionState) TableName() string {
	return "subscription_state"
}
