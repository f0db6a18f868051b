package db

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPrepare_AppliesPragmasAndSchema(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	for _, p := range pragmas {
		mock.ExpectExec(regexp.QuoteMeta(p)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS gauge_events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_gauge_events_occurred_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := Prepare(conn); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPrepare_SchemaFailureRollsBack(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	for _, p := range pragmas {
		mock.ExpectExec(regexp.QuoteMeta(p)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS gauge_events").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if err := Prepare(conn); err == nil {
		t.Fatalf("expected schema error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
