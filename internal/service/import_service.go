package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrInvalidFile 当输入不是合法 JSON 时返回（文件层错误，区别于结构错误）
	ErrInvalidFile = errors.New("invalid backup file")
	// ErrMalformedEnvelope 当 JSON 合法但信封结构不符时返回
	ErrMalformedEnvelope = errors.New("malformed backup envelope")
	// ErrUnsupportedVersion 当 version 字段不是整数 1 时返回
	ErrUnsupportedVersion = errors.New("unsupported backup version")
)

// TableCounts 按逻辑表名给出行数，供确认界面在提交前展示。
type TableCounts map[string]int

// ImportService 负责备份文件的校验与原子导入
// Validate 纯校验可反复调用；Commit 在单个事务内全量替换，
// 任一步失败都会整体回滚，提交前的数据保持原样
type ImportService struct {
	db *gorm.DB
}

// NewImportService 构造 ImportService
func NewImportService(gdb *gorm.DB) *ImportService {
	return &ImportService{db: gdb}
}

// Validate 校验信封结构并返回每张逻辑表的行数，不做任何写入。
// 校验顺序：JSON 解析、根对象、version、tables 对象、六个表键及其数组类型。
func (s *ImportService) Validate(raw []byte) (TableCounts, error) {
	tables, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	counts := make(TableCounts, len(db.BackupTables))
	for _, table := range db.BackupTables {
		counts[table.Logical] = len(tables[table.Logical])
	}
	return counts, nil
}

// Commit 重新校验后在一个事务内执行全量替换：
// 先按固定顺序清空六张底层表，再逐表写入信封中的行。
// 逻辑表名到底层表名的映射与导出端一致。
func (s *ImportService) Commit(raw []byte) (TableCounts, error) {
	tables, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	counts := make(TableCounts, len(db.BackupTables))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range db.BackupTables {
			if err := tx.Exec("DELETE FROM " + table.Table).Error; err != nil {
				return fmt.Errorf("clear table %s: %w", table.Table, err)
			}
		}

		for _, table := range db.BackupTables {
			rows := tables[table.Logical]
			counts[table.Logical] = len(rows)
			if len(rows) == 0 {
				continue
			}

			if err := insertRows(tx, table, rows); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// decodeEnvelope 解析原始输入并执行全部结构校验，返回按逻辑表名分组的行。
func decodeEnvelope(raw []byte) (map[string][]any, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	envelope, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedEnvelope, jsonTypeName(root))
	}

	version, present := envelope["version"]
	if !present {
		return nil, fmt.Errorf("%w: version field is missing", ErrUnsupportedVersion)
	}
	number, ok := version.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: version must be a number, got %s", ErrUnsupportedVersion, jsonTypeName(version))
	}
	if number != EnvelopeVersion {
		return nil, fmt.Errorf("%w: got %v, want %d", ErrUnsupportedVersion, number, EnvelopeVersion)
	}

	rawTables, present := envelope["tables"]
	if !present {
		return nil, fmt.Errorf("%w: tables field is missing", ErrMalformedEnvelope)
	}
	tablesObject, ok := rawTables.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: tables must be an object, got %s", ErrMalformedEnvelope, jsonTypeName(rawTables))
	}

	tables := make(map[string][]any, len(db.BackupTables))
	for _, table := range db.BackupTables {
		value, present := tablesObject[table.Logical]
		if !present {
			return nil, fmt.Errorf("%w: table %s is missing", ErrMalformedEnvelope, table.Logical)
		}
		rows, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: table %s must be an array, got %s", ErrMalformedEnvelope, table.Logical, jsonTypeName(value))
		}
		tables[table.Logical] = rows
	}

	return tables, nil
}

// insertRows 按首行确定列集合写入一张逻辑表。
// 信封保证同一逻辑表内所有行列集合一致，这里对每一行做同样的列检查，
// 任何偏差都会作为结构错误中止事务。
func insertRows(tx *gorm.DB, table db.BackupTable, rows []any) error {
	first, ok := rows[0].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: row 0 of %s must be an object, got %s", ErrMalformedEnvelope, table.Logical, jsonTypeName(rows[0]))
	}

	columns := make([]string, 0, len(first))
	for column := range first {
		if !identifierPattern.MatchString(column) {
			return fmt.Errorf("%w: column %q of %s is not a valid identifier", ErrMalformedEnvelope, column, table.Logical)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	statement := insertStatement(table.Table, columns)

	for index, rawRow := range rows {
		row, ok := rawRow.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: row %d of %s must be an object, got %s", ErrMalformedEnvelope, index, table.Logical, jsonTypeName(rawRow))
		}
		if len(row) != len(columns) {
			return fmt.Errorf("%w: row %d of %s has %d columns, want %d", ErrMalformedEnvelope, index, table.Logical, len(row), len(columns))
		}

		values := make([]any, len(columns))
		for i, column := range columns {
			value, present := row[column]
			if !present {
				return fmt.Errorf("%w: row %d of %s is missing column %q", ErrMalformedEnvelope, index, table.Logical, column)
			}
			values[i] = value
		}

		if err := tx.Exec(statement, values...).Error; err != nil {
			return fmt.Errorf("insert into %s: %w", table.Table, err)
		}
	}

	return nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// insertStatement 构造 INSERT OR REPLACE 语句。
// 提交前已清空全表，冲突只可能来自信封内部的重复主键，替换语义保证导入幂等。
func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = `"` + column + `"`
		placeholders[i] = "?"
	}

	return fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

// jsonTypeName 给出 JSON 值的类型名，用于结构错误信息。
func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
