package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"gorm.io/gorm"
)

// EnvelopeVersion 是当前备份文件格式版本，导入端只接受该值。
const EnvelopeVersion = 1

// BackupFileName 是导出文件的固定文件名。
const BackupFileName = "urgelog_backup.json"

// Envelope 是整库备份的版本化容器
// tables 按逻辑表名收录全部行，空表也必须出现（值为空数组）
type Envelope struct {
	Version    int                         `json:"version"`
	ExportedAt time.Time                   `json:"exported_at"`
	AppVersion string                      `json:"app_version"`
	Tables     map[string][]map[string]any `json:"tables"`
}

// ExportService 负责汇总快照并写出备份文件
// 备份面向用户本人，自由文本备注与金额等遥测禁发字段也会完整导出
type ExportService struct {
	db         *gorm.DB
	clock      domain.Clock
	cacheDir   string
	appVersion string
}

// NewExportService 构造 ExportService
// cacheDir 为临时目录，系统可能随时回收，调用方应在导出后立即转交文件
func NewExportService(gdb *gorm.DB, clock domain.Clock, cacheDir, appVersion string) *ExportService {
	return &ExportService{db: gdb, clock: clock, cacheDir: cacheDir, appVersion: appVersion}
}

// GatherSnapshot 全量读取六张表并组装信封，不做任何写入
func (s *ExportService) GatherSnapshot() (*Envelope, error) {
	tables := make(map[string][]map[string]any, len(db.BackupTables))

	for _, table := range db.BackupTables {
		rows := []map[string]any{}
		if err := s.db.Table(table.Table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("read table %s: %w", table.Table, err)
		}
		tables[table.Logical] = rows
	}

	return &Envelope{
		Version:    EnvelopeVersion,
		ExportedAt: s.clock.Now().UTC(),
		AppVersion: s.appVersion,
		Tables:     tables,
	}, nil
}

// WriteSnapshotToFile 将信封序列化为 JSON 写入缓存目录，返回文件路径
// 只有一次文件写入，不改动存储
func (s *ExportService) WriteSnapshotToFile() (string, error) {
	envelope, err := s.GatherSnapshot()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare cache dir: %w", err)
	}

	path := filepath.Join(s.cacheDir, BackupFileName)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}

	return path, nil
}
