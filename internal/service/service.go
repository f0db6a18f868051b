package service

import (
	"context"
	"time"

	"energy_gauge/internal/logger"
	"energy_gauge/internal/models"
	"energy_gauge/internal/repository"
)

// Fetcher reads one snapshot from the device.
type Fetcher interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
}

// Renderer applies cycle outcomes to the display surface.
type Renderer interface {
	Apply(ctx context.Context, seq uint64, snap models.Snapshot) (models.Display, bool)
	Fail(ctx context.Context, seq uint64, cause error) (models.Display, bool)
}

// Publisher mirrors rendered displays to another surface.
type Publisher interface {
	Publish(ctx context.Context, d models.Display) error
}

// Monitoring exposes the read-only display.
type Monitoring interface {
	Display() models.Display
}

// EventLog exposes append-only journal entries with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.GaugeEvent, error)
}

// Poller runs the background fetch loop. Stop via context cancellation.
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
}

// Service aggregates the sub-services used by the HTTP layer and main.
type Service struct {
	Monitoring
	EventLog
	Poller
}

// NewService wires the repositories, the device and the publishers.
func NewService(repos *repository.Repository, fetcher Fetcher, opts DashboardOptions, log *logger.Logger, publishers ...Publisher) *Service {
	dashboard := NewDashboardService(repos.EventRepo, opts, log)
	return &Service{
		Monitoring: dashboard,
		EventLog:   NewEventLogService(repos.EventRepo),
		Poller:     NewPollerService(fetcher, dashboard, log, publishers...),
	}
}
