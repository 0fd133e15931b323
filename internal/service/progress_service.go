package service

import (
	"errors"
	"fmt"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressService 负责在每次事件后重算并落盘当日进度快照
// 计数规则与段位/连胜推导全部委托给 domain 包的纯函数
type ProgressService struct {
	db    *gorm.DB
	clock domain.Clock
}

// NewProgressService 构造 ProgressService
func NewProgressService(gdb *gorm.DB, clock domain.Clock) *ProgressService {
	return &ProgressService{db: gdb, clock: clock}
}

// ApplyEvent 在冲动事件写入后更新累计计数并 upsert 当日快照
func (s *ProgressService) ApplyEvent(event *db.UrgeEvent) (*db.ProgressRecord, error) {
	latest, err := s.Latest()
	if err != nil {
		return nil, err
	}

	resistTotal := 0
	spendAvoided := 0
	if latest != nil {
		resistTotal = latest.ResistTotal
		spendAvoided = latest.SpendAvoidedTotal
	}

	if domain.ShouldIncrementResist(event.Outcome) {
		resistTotal++
	}
	if domain.ShouldIncrementSpendAvoided(event.Kind, event.Outcome) {
		spendAvoided++
	}

	return s.upsertToday(resistTotal, spendAvoided)
}

// ApplyContentCompletion 在内容任务完成后刷新当日快照（计数不变，连胜可能变化）
func (s *ProgressService) ApplyContentCompletion() (*db.ProgressRecord, error) {
	latest, err := s.Latest()
	if err != nil {
		return nil, err
	}

	resistTotal := 0
	spendAvoided := 0
	if latest != nil {
		resistTotal = latest.ResistTotal
		spendAvoided = latest.SpendAvoidedTotal
	}

	return s.upsertToday(resistTotal, spendAvoided)
}

// Latest 返回最近一条进度快照，没有任何快照时返回 nil
func (s *ProgressService) Latest() (*db.ProgressRecord, error) {
	var record db.ProgressRecord
	if err := s.db.Order("date DESC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load latest progress: %w", err)
	}
	return &record, nil
}

// GetByDate 返回指定日期的快照，不存在时返回 nil
func (s *ProgressService) GetByDate(date string) (*db.ProgressRecord, error) {
	var record db.ProgressRecord
	if err := s.db.Where("date = ?", date).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return &record, nil
}

func (s *ProgressService) upsertToday(resistTotal, spendAvoided int) (*db.ProgressRecord, error) {
	today := domain.DateOf(s.clock.Now())

	successDates, err := s.successDates()
	if err != nil {
		return nil, err
	}

	streak := domain.CalculateStreak(successDates, today)

	var lastSuccess *string
	if latest := latestSuccessDate(successDates); latest != nil {
		formatted := latest.String()
		lastSuccess = &formatted
	}

	record := db.ProgressRecord{
		Date:              today.String(),
		Streak:            streak,
		ResistTotal:       resistTotal,
		Rank:              domain.CalculateRank(resistTotal),
		LastSuccessDate:   lastSuccess,
		SpendAvoidedTotal: spendAvoided,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	return &record, nil
}

// successDates 汇总成功日：当天有 success 结果的事件，或完成了内容任务。
// 集合只增不减，同日后续失败不会撤销已成立的成功日。
func (s *ProgressService) successDates() (map[domain.Date]bool, error) {
	dates := map[domain.Date]bool{}

	var events []db.UrgeEvent
	if err := s.db.Select("started_at").
		Where("outcome = ?", domain.OutcomeSuccess).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load success events: %w", err)
	}
	for _, event := range events {
		dates[domain.DateOf(event.StartedAt.Local())] = true
	}

	var completions []db.ContentProgress
	if err := s.db.Select("completed_at").Find(&completions).Error; err != nil {
		return nil, fmt.Errorf("load content completions: %w", err)
	}
	for _, completion := range completions {
		dates[domain.DateOf(completion.CompletedAt.Local())] = true
	}

	return dates, nil
}

func latestSuccessDate(dates map[domain.Date]bool) *domain.Date {
	var latest *domain.Date
	for date := range dates {
		if latest == nil || latest.Before(date) {
			d := date
			latest = &d
		}
	}
	return latest
}
