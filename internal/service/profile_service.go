package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService 负责用户档案单行表
// 档案不存在不是错误，Get 此时返回 nil
type ProfileService struct {
	db *gorm.DB
}

// ProfileInput 定义可配置的档案字段
type ProfileInput struct {
	Locale            string
	GoalType          string
	NotificationStyle string
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// Get 返回用户档案，尚未创建时返回 nil
func (s *ProfileService) Get() (*db.UserProfile, error) {
	var profile db.UserProfile
	if err := s.db.First(&profile, db.SingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Save 创建或整行更新用户档案
func (s *ProfileService) Save(input ProfileInput) (*db.UserProfile, error) {
	profile := db.UserProfile{
		ID:                db.SingletonID,
		Locale:            strings.TrimSpace(input.Locale),
		GoalType:          strings.TrimSpace(input.GoalType),
		NotificationStyle: strings.TrimSpace(input.NotificationStyle),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"locale", "goal_type", "notification_style"}),
	}).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if err := s.db.First(&profile, db.SingletonID).Error; err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}

	return &profile, nil
}
