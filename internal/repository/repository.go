package repository

import (
	"context"
	"database/sql"
	"time"

	"energy_gauge/internal/models"
)

// EventRepo is the append-only gauge journal.
type EventRepo interface {
	Append(ctx context.Context, e models.GaugeEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.GaugeEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
