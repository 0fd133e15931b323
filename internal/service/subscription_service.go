package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionService 负责订阅状态单行表
// 每次与购买提供方同步后整行替换，历史状态不保留
type SubscriptionService struct {
	db *gorm.DB
}

// SubscriptionInput 定义同步写入的订阅字段
type SubscriptionInput struct {
	Status        string
	ProductID     string
	BillingPeriod string
	StartedAt     *time.Time
	ExpiresAt     *time.Time
}

// NewSubscriptionService 构造 SubscriptionService
func NewSubscriptionService(gdb *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: gdb}
}

// Get 返回当前订阅状态，尚无记录时返回 nil
func (s *SubscriptionService) Get() (*db.SubscriptionState, error) {
	var state db.SubscriptionState
	if err := s.db.First(&state, db.SingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &state, nil
}

// Replace 整行替换订阅状态
func (s *SubscriptionService) Replace(input SubscriptionInput) (*db.SubscriptionState, error) {
	state := db.SubscriptionState{
		ID:            db.SingletonID,
		Status:        strings.TrimSpace(input.Status),
		ProductID:     strings.TrimSpace(input.ProductID),
		BillingPeriod: strings.TrimSpace(input.BillingPeriod),
		StartedAt:     input.StartedAt,
		ExpiresAt:     input.ExpiresAt,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&state).Error; err != nil {
		return nil, fmt.Errorf("replace subscription: %w", err)
	}

	return &state, nil
}
