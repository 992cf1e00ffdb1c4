package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/models"
)

// SQLiteDialect implements Dialect for SQLite via modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) NewParamBuilder() ParamBuilder {
	return &sqliteParamBuilder{}
}

func (d *SQLiteDialect) SerialKey() string { return "INTEGER PRIMARY KEY" }

func (d *SQLiteDialect) Arg(v any) any {
	switch val := v.(type) {
	case bool:
		if val {
			return 1
		}
		return 0
	case time.Time:
		return val.UTC().Format(sqliteTimeLayout)
	default:
		return v
	}
}

func (d *SQLiteDialect) ColumnType(fieldType string) string {
	switch fieldType {
	case models.TypeInteger, models.TypeBoolean:
		return "INTEGER"
	case models.TypeDecimal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (d *SQLiteDialect) BucketExpr(col string, bucket descriptor.Bucket) string {
	var format string
	switch bucket {
	case descriptor.BucketHour:
		format = "%Y-%m-%d %H:00:00"
	case descriptor.BucketMonth:
		format = "%Y-%m-01 00:00:00"
	default:
		format = "%Y-%m-%d 00:00:00"
	}
	return fmt.Sprintf("strftime('%s', %s)", format, col)
}

func (d *SQLiteDialect) TableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?1",
		tableName,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *SQLiteDialect) MapError(err error) error {
	if err == nil {
		return nil
	}
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "constraint failed: UNIQUE") {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	return err
}
