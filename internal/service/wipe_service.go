package service

import (
	"fmt"

	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
)

// WipeService 负责“删除全部数据”
// 六张表在同一事务内按固定顺序清空，失败则全部保留
type WipeService struct {
	db *gorm.DB
}

// NewWipeService 构造 WipeService
func NewWipeService(gdb *gorm.DB) *WipeService {
	return &WipeService{db: gdb}
}

// DeleteAll 清空全部六张表
func (s *WipeService) DeleteAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range db.BackupTables {
			if err := tx.Exec("DELETE FROM " + table.Table).Error; err != nil {
				return fmt.Errorf("clear table %s: %w", table.Table, err)
			}
		}
		return nil
	})
}
