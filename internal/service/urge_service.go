package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/gorm"
)

var (
	// ErrInvalidUrgeLevel 当冲动强度不在 1-5 时返回
	ErrInvalidUrgeLevel = errors.New("urge level must be between 1 and 5")
	// ErrInvalidUrgeKind 当类别不是 swipe/check/spend 时返回
	ErrInvalidUrgeKind = errors.New("invalid urge kind")
	// ErrInvalidUrgeOutcome 当结果不是 success/ongoing/fail 时返回
	ErrInvalidUrgeOutcome = errors.New("invalid urge outcome")
)

// UrgeService 负责冲动事件的写入与查询
// 行一经写入不再修改，统计口径由 ProgressService 另行推导
type UrgeService struct {
	db    *gorm.DB
	clock domain.Clock
}

// UrgeInput 定义记录冲动事件时可配置字段
// StartedAt 为零值时取当前时间
type UrgeInput struct {
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
}

// NewUrgeService 构造 UrgeService
func NewUrgeService(gdb *gorm.DB, clock domain.Clock) *UrgeService {
	return &UrgeService{db: gdb, clock: clock}
}

// Log 写入一条冲动事件，主键由服务端生成
func (s *UrgeService) Log(input UrgeInput) (*db.UrgeEvent, error) {
	if err := validateUrgeInput(input); err != nil {
		return nil, err
	}

	startedAt := input.StartedAt
	if startedAt.IsZero() {
		startedAt = s.clock.Now()
	}

	event := db.UrgeEvent{
		ID:            uuid.NewString(),
		StartedAt:     startedAt,
		Screen:        strings.TrimSpace(input.Screen),
		Level:         input.Level,
		Kind:          input.Kind,
		Completed:     input.Completed,
		Action:        strings.TrimSpace(input.Action),
		Outcome:       input.Outcome,
		Trigger:       input.Trigger,
		SpendCategory: input.SpendCategory,
		SpendItem:     input.SpendItem,
		SpendAmount:   input.SpendAmount,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("log urge event: %w", err)
	}
	return &event, nil
}

// ListBetween 返回起止日历日（含端点）内的事件，按开始时间升序
func (s *UrgeService) ListBetween(start, end domain.Date) ([]db.UrgeEvent, error) {
	var events []db.UrgeEvent

	from := time.Date(start.Year, start.Month, start.Day, 0, 0, 0, 0, time.Local)
	to := time.Date(end.Year, end.Month, end.Day, 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)

	if err := s.db.Where("started_at >= ? AND started_at < ?", from, to).
		Order("started_at ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list urge events: %w", err)
	}

	return events, nil
}

func validateUrgeInput(input UrgeInput) error {
	if input.Level < 1 || input.Level > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidUrgeLevel, input.Level)
	}

	switch input.Kind {
	case domain.KindSwipe, domain.KindCheck, domain.KindSpend:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidUrgeKind, input.Kind)
	}

	switch input.Outcome {
	case domain.OutcomeSuccess, domain.OutcomeOngoing, domain.OutcomeFail:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidUrgeOutcome, input.Outcome)
	}

	return nil
}
