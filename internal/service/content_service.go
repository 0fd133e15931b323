package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrContentIDRequired 当内容 ID 为空时返回
var ErrContentIDRequired = errors.New("content id is required")

// ContentService 负责内容单元完成状态
type ContentService struct {
	db    *gorm.DB
	clock domain.Clock
}

// NewContentService 构造 ContentService
func NewContentService(gdb *gorm.DB, clock domain.Clock) *ContentService {
	return &ContentService{db: gdb, clock: clock}
}

// MarkCompleted 标记内容单元完成，重复标记保持首次完成时间
func (s *ContentService) MarkCompleted(contentID string) (*db.ContentProgress, error) {
	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return nil, ErrContentIDRequired
	}

	record := db.ContentProgress{
		ContentID:   contentID,
		CompletedAt: s.clock.Now(),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoNothing: true,
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("mark content completed: %w", err)
	}

	if err := s.db.Where("content_id = ?", contentID).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload content progress: %w", err)
	}

	return &record, nil
}

// ListCompleted 返回全部已完成的内容单元，按完成时间升序
func (s *ContentService) ListCompleted() ([]db.ContentProgress, error) {
	var records []db.ContentProgress
	if err := s.db.Order("completed_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list content progress: %w", err)
	}
	return records, nil
}
