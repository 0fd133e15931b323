package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidRating 当评分不在 1-5 区间时返回
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrCheckinNotFound 当指定日期没有签到时返回
	ErrCheckinNotFound = errors.New("checkin not found")
)

// CheckinService 负责每日签到的写入与查询
// Date 上有唯一索引，重复提交同一天即为补记/修改
type CheckinService struct {
	db    *gorm.DB
	clock domain.Clock
}

// CheckinInput 定义签到时可配置字段
// Date 为空时取当前本地日历日
type CheckinInput struct {
	Date        string
	Mood        int
	Fatigue     int
	Urge        int
	Note        *string
	NightUse    *bool
	SpendFlag   *bool
	SpendAmount *float64
}

// NewCheckinService 构造 CheckinService
func NewCheckinService(gdb *gorm.DB, clock domain.Clock) *CheckinService {
	return &CheckinService{db: gdb, clock: clock}
}

// Upsert 处理幂等签到逻辑：同一天已存在则更新评分与备注，否则创建
func (s *CheckinService) Upsert(input CheckinInput) (*db.DailyCheckin, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	for _, rating := range []int{input.Mood, input.Fatigue, input.Urge} {
		if rating < 1 || rating > 5 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
		}
	}

	record := db.DailyCheckin{
		ID:          uuid.NewString(),
		Date:        date,
		Mood:        input.Mood,
		Fatigue:     input.Fatigue,
		Urge:        input.Urge,
		Note:        input.Note,
		NightUse:    input.NightUse,
		SpendFlag:   input.SpendFlag,
		SpendAmount: input.SpendAmount,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mood", "fatigue", "urge", "note", "night_use", "spend_flag", "spend_amount", "updated_at",
		}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert checkin: %w", err)
	}

	if err := s.db.Where("date = ?", date).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload checkin: %w", err)
	}

	return &record, nil
}

// GetByDate 返回指定日期的签到
func (s *CheckinService) GetByDate(date string) (*db.DailyCheckin, error) {
	var record db.DailyCheckin
	if err := s.db.Where("date = ?", strings.TrimSpace(date)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("get checkin: %w", err)
	}
	return &record, nil
}

// ListBetween 返回起止日期（含端点）内的签到，按日期升序
func (s *CheckinService) ListBetween(start, end string) ([]db.DailyCheckin, error) {
	var records []db.DailyCheckin
	if err := s.db.Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	return records, nil
}

func (s *CheckinService) resolveDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DateOf(s.clock.Now()).String(), nil
	}

	parsed, err := domain.ParseDate(raw)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}
