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

// Dialect abstracts database-specific SQL generation and behavior.
type Dialect interface {
	// Name returns "postgres" or "sqlite".
	Name() string

	// DriverName returns the database/sql driver name ("pgx" or "sqlite").
	DriverName() string

	// NewParamBuilder creates a dialect-aware parameter builder.
	NewParamBuilder() ParamBuilder

	// ColumnType maps a model field type to the database DDL type.
	ColumnType(fieldType string) string

	// SerialKey returns the DDL of an auto-incrementing integer primary key.
	SerialKey() string

	// Arg converts a Go value into the form the driver stores for it.
	// SQLite keeps booleans as integers and timestamps as text.
	Arg(v any) any

	// BucketExpr truncates a timestamp column to the start of its bucket
	// in UTC.
	BucketExpr(col string, bucket descriptor.Bucket) string

	// TableExists checks whether a table exists.
	TableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error)

	// MapError inspects a driver error and returns a well-known sentinel error if applicable.
	MapError(err error) error
}

// ParamBuilder accumulates query parameters and generates dialect-specific placeholders.
type ParamBuilder interface {
	// Add appends a value and returns the placeholder string.
	Add(v any) string

	// Params returns all accumulated parameter values.
	Params() []any
}

// NewDialect creates a Dialect for the given driver name ("postgres" or "sqlite").
func NewDialect(driver string) Dialect {
	switch driver {
	case "sqlite":
		return &SQLiteDialect{}
	default:
		return &PostgresDialect{}
	}
}

// QuoteIdent quotes a table or column name. Both dialects accept
// double-quoted identifiers. Names come from the models catalog, which
// only admits plain identifiers.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqliteTimeLayout is how timestamps are stored in SQLite TEXT columns.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// ColumnDDL renders the column definition of a model field.
func ColumnDDL(d Dialect, f models.Field) string {
	if f.Name == "id" {
		if f.Type == models.TypeInteger {
			return QuoteIdent(f.Name) + " " + d.SerialKey()
		}
		return QuoteIdent(f.Name) + " " + d.ColumnType(f.Type) + " PRIMARY KEY"
	}
	return QuoteIdent(f.Name) + " " + d.ColumnType(f.Type)
}

// --- PostgreSQL ParamBuilder ---

type pgParamBuilder struct {
	params []any
	n      int
}

func (p *pgParamBuilder) Add(v any) string {
	p.n++
	p.params = append(p.params, v)
	return fmt.Sprintf("$%d", p.n)
}

func (p *pgParamBuilder) Params() []any { return p.params }

// --- SQLite ParamBuilder ---

type sqliteParamBuilder struct {
	params []any
	n      int
}

func (p *sqliteParamBuilder) Add(v any) string {
	p.n++
	p.params = append(p.params, v)
	return fmt.Sprintf("?%d", p.n)
}

func (p *sqliteParamBuilder) Params() []any { return p.params }

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
