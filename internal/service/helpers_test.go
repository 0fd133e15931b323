package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%s-%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.UserProfile{},
		&db.UrgeEvent{},
		&db.DailyCheckin{},
		&db.ProgressRecord{},
		&db.ContentProgress{},
		&db.SubscriptionState{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

// fixedClock 把“今天”固定在指定日期的上午十点（本地时区）
func fixedClock(t *testing.T, date string) domain.Clock {
	t.Helper()

	parsed, err := time.ParseInLocation(domain.DateFormat, date, time.Local)
	if err != nil {
		t.Fatalf("invalid fixed clock date %s: %v", date, err)
	}
	return domain.FixedClock{T: parsed.Add(10 * time.Hour)}
}

func tableCount(t *testing.T, gdb *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	if err := gdb.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("failed to count table %s: %v", table, err)
	}
	return count
}
