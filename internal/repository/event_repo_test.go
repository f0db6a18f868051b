package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"energy_gauge/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			models.EventReady, "ultimate",
			`{"target_v":5}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.GaugeEvent{
		// EventID empty -> repo generates
		// OccurredAt zero -> repo sets UTC now
		Type:        "  ready ",
		Description: "ultimate",
		Metadata:    map[string]any{"target_v": 5},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_FormatsGivenTimeInUTC(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	local := time.Date(2025, 3, 1, 12, 0, 0, 250_000_000, time.FixedZone("ICT", 7*3600))

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs("ev-1", "2025-03-01 05:00:00.250", models.EventDisconnected, "down", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.GaugeEvent{
		EventID:     "ev-1",
		OccurredAt:  local,
		Type:        models.EventDisconnected,
		Description: "down",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	mock.ExpectExec("INSERT INTO gauge_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.GaugeEvent{
		Type:        models.EventReconnected,
		Description: "x",
	})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_UnmarshalableMetadata(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	err := repo.Append(ctx(t), models.GaugeEvent{
		Type:     models.EventReady,
		Metadata: map[string]any{"ch": make(chan int)},
	})
	if err == nil {
		t.Fatalf("expected marshal error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should run: %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	js, _ := json.Marshal(map[string]any{"status": "IDLE"})

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("1", "2025-01-01 10:00:00.000", models.EventReady, "m1", string(js)).
		AddRow("2", "2025-01-01T11:00:00Z", models.EventReadyCleared, "m2", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, type, message, meta FROM gauge_events ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "1" || got[1].EventID != "2" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC); !got[0].OccurredAt.Equal(want) {
		t.Fatalf("occurred_at[0] = %v; want %v", got[0].OccurredAt, want)
	}
	if want := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC); !got[1].OccurredAt.Equal(want) {
		t.Fatalf("occurred_at[1] = %v; want %v", got[1].OccurredAt, want)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := `SELECT id, occurred_at, type, message, meta FROM gauge_events WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("2", "2025-01-01 11:00:00.000", models.EventDisconnected, "b", nil).
		AddRow("3", "2025-01-01 12:00:00.000", models.EventDisconnected, "c", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-01-01 11:00:00.000", "2025-01-01 12:00:00.000", models.EventDisconnected).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " disconnected ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("x", "yesterday", models.EventReady, "msg", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, type, message, meta FROM gauge_events ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_QueryError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	mock.ExpectQuery("SELECT id, occurred_at").WillReturnError(errors.New("locked"))

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected query error, got %v", err)
	}
}
