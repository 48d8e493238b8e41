package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"GovNewsCrawler/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleArticle(notify bool) domain.Article {
	return domain.Article{
		Title:          "Helmet recall announced",
		URL:            "https://agency.gov/news/2024/03/15/helmet-recall",
		ImageURL:       "https://agency.gov/images/helmet.jpg",
		CreatedAt:      time.Date(2024, time.March, 15, 15, 0, 0, 0, time.UTC),
		Description:    "The agency announced a recall of helmets.",
		Markup:         "# Helmet recall",
		CollectionName: "us_gov_news",
		Topic:          "Consumer Safety",
		Branch:         "federal",
		Country:        "united states",
		Notification:   notify,
	}
}

func TestTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"Consumer Safety", "consumer_safety"},
		{"health", "health"},
		{"Veterans  Affairs", "veterans__affairs"},
	}

	for _, tc := range tests {
		if got := TableName(tc.topic); got != tc.want {
			t.Errorf("TableName(%q) = %q, want %q", tc.topic, got, tc.want)
		}
	}
}

func TestColumnMapExcludesNotification(t *testing.T) {
	t.Parallel()

	cols, err := columnMap(sampleArticle(true))
	if err != nil {
		t.Fatalf("columnMap error: %v", err)
	}

	if _, ok := cols["notification"]; ok {
		t.Fatal("notification control field must never become a column")
	}
	if cols["title"] != "Helmet recall announced" {
		t.Fatalf("title column = %v", cols["title"])
	}
	if cols["document_url"] != nil {
		t.Fatalf("empty optional field should map to NULL, got %v", cols["document_url"])
	}
}

func TestStorable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"string", "text", true},
		{"bool", true, true},
		{"int64", int64(7), true},
		{"float64", 0.5, true},
		{"time", time.Now(), true},
		{"slice", []string{"x"}, false},
		{"map", map[string]string{}, false},
		{"int", 7, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := storable(tc.value); got != tc.want {
				t.Fatalf("storable(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func expectEnsureSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestInsertWithNotification(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectEnsureSchema(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "united_states_of_america"\."consumer_safety"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	sink := NewPostgresSink(db, "united_states_of_america", discardLogger())

	id, note, err := sink.Insert(context.Background(), sampleArticle(true))
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if note == nil {
		t.Fatal("expected a notification record")
	}
	if note.TableID != 42 || note.TableName != "consumer_safety" || note.Schema != "united_states_of_america" {
		t.Fatalf("notification = %+v", note)
	}
	if note.Title != "Helmet recall announced" || note.Topic != "Consumer Safety" {
		t.Fatalf("notification payload = %+v", note)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertWithoutNotification(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectEnsureSchema(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	sink := NewPostgresSink(db, "united_states_of_america", discardLogger())

	id, note, err := sink.Insert(context.Background(), sampleArticle(false))
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	if note != nil {
		t.Fatalf("unexpected notification: %+v", note)
	}
}

func TestInsertUndefinedTableRecovery(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectEnsureSchema(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO`).
		WillReturnError(&pq.Error{Code: codeUndefinedTable, Message: `relation "united_states_of_america.consumer_safety" does not exist`})
	mock.ExpectRollback()
	// Recovery recreates the table but the item is not retried.
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sink := NewPostgresSink(db, "united_states_of_america", discardLogger())

	_, _, err = sink.Insert(context.Background(), sampleArticle(false))
	if err == nil {
		t.Fatal("expected error")
	}

	var uterr *domain.UndefinedTableError
	if !errors.As(err, &uterr) {
		t.Fatalf("expected UndefinedTableError, got %T: %v", err, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("item was retried or DDL missing: %v", err)
	}
}

func TestInsertUndefinedColumnRecovery(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectEnsureSchema(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO`).
		WillReturnError(&pq.Error{Code: codeUndefinedColumn, Message: `column "md" of relation "consumer_safety" does not exist`})
	mock.ExpectRollback()
	mock.ExpectExec(`ALTER TABLE .* ADD COLUMN IF NOT EXISTS "md"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	sink := NewPostgresSink(db, "united_states_of_america", discardLogger())

	_, _, err = sink.Insert(context.Background(), sampleArticle(false))
	if err == nil {
		t.Fatal("expected error")
	}

	var ucerr *domain.UndefinedColumnError
	if !errors.As(err, &ucerr) {
		t.Fatalf("expected UndefinedColumnError, got %T: %v", err, err)
	}
	if ucerr.Column != "md" {
		t.Fatalf("column = %q, want md", ucerr.Column)
	}
}

func TestInsertTransientErrorRollsBack(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectEnsureSchema(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	sink := NewPostgresSink(db, "united_states_of_america", discardLogger())

	_, _, err = sink.Insert(context.Background(), sampleArticle(false))
	if err == nil {
		t.Fatal("expected error")
	}

	var terr *domain.TransientStoreError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransientStoreError, got %T: %v", err, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rollback missing: %v", err)
	}
}

func TestMissingColumnParsing(t *testing.T) {
	t.Parallel()

	if got := missingColumn(&pq.Error{Column: "topic"}); got != "topic" {
		t.Fatalf("got %q", got)
	}
	if got := missingColumn(&pq.Error{Message: `column "branch" of relation "x" does not exist`}); got != "branch" {
		t.Fatalf("got %q", got)
	}
	if got := missingColumn(&pq.Error{Message: "something else"}); got != "" {
		t.Fatalf("got %q", got)
	}
}
