// Package storage maps normalized articles onto per-topic Postgres
// tables inside a fixed schema namespace.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"GovNewsCrawler/internal/domain"
	"GovNewsCrawler/internal/ports"
)

const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
)

// columnTypes is the DDL shape of an article table; the id column is
// generated, everything else mirrors the record fields.
var columnTypes = map[string]string{
	"title":           "TEXT",
	"url":             "TEXT",
	"image_url":       "TEXT",
	"document_url":    "TEXT",
	"created_at":      "TIMESTAMPTZ",
	"description":     "TEXT",
	"md":              "TEXT",
	"collection_name": "TEXT",
	"topic":           "TEXT",
	"branch":          "TEXT",
	"country":         "TEXT",
}

var columnExpr = regexp.MustCompile(`column "([^"]+)"`)

// PostgresSink inserts articles with one scoped transaction per record.
// A mutex serializes writers: one record's insert commits fully before
// the next begins.
type PostgresSink struct {
	db      *sql.DB
	schema  string
	logger  *slog.Logger
	builder sq.StatementBuilderType

	mu      sync.Mutex
	ensured map[string]bool
}

var _ ports.ArticleSink = (*PostgresSink)(nil)

// NewPostgresSink wires a database handle and target schema.
func NewPostgresSink(db *sql.DB, schema string, logger *slog.Logger) *PostgresSink {
	return &PostgresSink{
		db:      db,
		schema:  schema,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		ensured: map[string]bool{},
	}
}

// TableName derives the destination table from the routing field.
func TableName(topic string) string {
	return strings.ReplaceAll(strings.ToLower(topic), " ", "_")
}

// Insert writes one normalized article and returns the generated row id.
// When the record carried the notification flag, a derived notification
// record is returned alongside; the flag itself is never persisted.
func (s *PostgresSink) Insert(ctx context.Context, article domain.Article) (int64, *domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := TableName(article.Topic)

	// The notification flag is consumed here: columnMap never emits it.
	notify := article.Notification

	cols, err := columnMap(article)
	if err != nil {
		return 0, nil, err
	}

	if err := s.ensureSchema(ctx, table); err != nil {
		return 0, nil, err
	}

	id, err := s.insertRow(ctx, table, cols)
	if err != nil {
		return 0, nil, s.recover(ctx, table, err)
	}

	s.logger.Info("article stored", "schema", s.schema, "table", table, "id", id)

	if !notify {
		return id, nil, nil
	}

	return id, &domain.Notification{
		TableID:        id,
		Schema:         s.schema,
		TableName:      table,
		Title:          article.Title,
		ImageURL:       article.ImageURL,
		Description:    article.Description,
		Topic:          article.Topic,
		CollectionName: article.CollectionName,
	}, nil
}

func (s *PostgresSink) insertRow(ctx context.Context, table string, cols map[string]any) (int64, error) {
	query, args, err := s.builder.
		Insert(s.qualified(table)).
		SetMap(cols).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, &domain.TransientStoreError{Op: "build insert", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &domain.TransientStoreError{Op: "begin", Err: err}
	}

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, &domain.TransientStoreError{Op: "commit", Err: err}
	}

	return id, nil
}

// recover classifies a failed insert and, for the two recoverable schema
// conditions, applies the corresponding DDL. The item still fails for
// this attempt; it is never silently retried.
func (s *PostgresSink) recover(ctx context.Context, table string, err error) error {
	var terr *domain.TransientStoreError
	if errors.As(err, &terr) {
		return err
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return &domain.TransientStoreError{Op: "insert", Err: err}
	}

	switch string(pqErr.Code) {
	case codeUndefinedTable:
		s.logger.Warn("destination table missing, creating", "schema", s.schema, "table", table)
		if ddlErr := s.createTable(ctx, table); ddlErr != nil {
			s.logger.Error("create table failed", "table", table, "error", ddlErr)
		}
		return &domain.UndefinedTableError{Schema: s.schema, Table: table, Err: err}

	case codeUndefinedColumn:
		column := missingColumn(pqErr)
		s.logger.Warn("destination column missing, adding", "table", table, "column", column)
		if column != "" {
			if ddlErr := s.addColumn(ctx, table, column); ddlErr != nil {
				s.logger.Error("add column failed", "table", table, "column", column, "error", ddlErr)
			}
		}
		return &domain.UndefinedColumnError{Schema: s.schema, Table: table, Column: column, Err: err}

	default:
		return &domain.TransientStoreError{Op: "insert", Err: err}
	}
}

// ensureSchema proactively creates the schema and table on first contact
// so the reactive recovery path stays a fallback net rather than the
// primary control flow.
func (s *PostgresSink) ensureSchema(ctx context.Context, table string) error {
	if s.ensured[table] {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pq.QuoteIdentifier(s.schema))); err != nil {
		return &domain.TransientStoreError{Op: "create schema", Err: err}
	}
	if err := s.createTable(ctx, table); err != nil {
		return &domain.TransientStoreError{Op: "create table", Err: err}
	}

	s.ensured[table] = true
	return nil
}

func (s *PostgresSink) createTable(ctx context.Context, table string) error {
	defs := make([]string, 0, len(columnTypes)+1)
	defs = append(defs, "id BIGSERIAL PRIMARY KEY")
	for _, name := range orderedColumns() {
		defs = append(defs, fmt.Sprintf("%s %s", pq.QuoteIdentifier(name), columnTypes[name]))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.qualified(table), strings.Join(defs, ", "))
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *PostgresSink) addColumn(ctx context.Context, table, column string) error {
	colType, ok := columnTypes[column]
	if !ok {
		colType = "TEXT"
	}

	ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
		s.qualified(table), pq.QuoteIdentifier(column), colType)
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *PostgresSink) qualified(table string) string {
	return pq.QuoteIdentifier(s.schema) + "." + pq.QuoteIdentifier(table)
}

// columnMap builds the column-value map for one article. The
// notification control field never becomes a column; optional string
// fields persist as NULL when empty.
func columnMap(a domain.Article) (map[string]any, error) {
	cols := map[string]any{
		"title":           a.Title,
		"url":             a.URL,
		"image_url":       nullable(a.ImageURL),
		"document_url":    nullable(a.DocumentURL),
		"created_at":      a.CreatedAt,
		"description":     a.Description,
		"md":              nullable(a.Markup),
		"collection_name": a.CollectionName,
		"topic":           a.Topic,
		"branch":          a.Branch,
		"country":         a.Country,
	}

	for name, value := range cols {
		if !storable(value) {
			return nil, &domain.UnsupportedValueError{Field: name, Value: value}
		}
	}

	return cols, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// storable reports whether a value maps to a supported column type.
// Every current article field passes; the check catches future fields
// added to columnMap with a type the DDL cannot represent.
func storable(v any) bool {
	switch v.(type) {
	case nil, string, bool, int64, float64, time.Time:
		return true
	default:
		return false
	}
}

func missingColumn(err *pq.Error) string {
	if err.Column != "" {
		return err.Column
	}
	if m := columnExpr.FindStringSubmatch(err.Message); m != nil {
		return m[1]
	}
	return ""
}

// orderedColumns keeps generated DDL deterministic.
func orderedColumns() []string {
	names := make([]string, 0, len(columnTypes))
	for name := range columnTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
