package service

import (
	"context"
	"math"
	"sync"
	"time"

	"energy_gauge/internal/energy"
	"energy_gauge/internal/logger"
	"energy_gauge/internal/models"
	"energy_gauge/internal/repository"

	"github.com/google/uuid"
)

// link tracks device reachability so the journal only records edges.
type link int

const (
	linkUnknown link = iota
	linkUp
	linkDown
)

// DashboardOptions tunes rendering.
type DashboardOptions struct {
	Tariff   energy.Tariff
	Currency string
	// DropStale discards completions older than the last accepted cycle.
	DropStale bool
}

// DashboardService owns the display surface and the ready flag. Every
// completion runs under mu, one at a time.
type DashboardService struct {
	mu      sync.Mutex
	display models.Display
	ready   *ReadyTracker
	link    link
	lastSeq uint64

	opts      DashboardOptions
	eventRepo repository.EventRepo
	log       *logger.Logger
}

// NewDashboardService returns a dashboard in its waiting state.
func NewDashboardService(eventRepo repository.EventRepo, opts DashboardOptions, log *logger.Logger) *DashboardService {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Tariff == (energy.Tariff{}) {
		opts.Tariff = energy.DefaultTariff
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardService{
		display:   initialDisplay(opts.Currency),
		ready:     NewReadyTracker(),
		opts:      opts,
		eventRepo: eventRepo,
		log:       log,
	}
}

// Display returns a copy of the current surface.
func (s *DashboardService) Display() models.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// ReadyState reports the ready flag.
func (s *DashboardService) ReadyState() ReadyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready.State()
}

// accept applies the stale-completion guard. Sequences start at 1.
// Caller holds mu.
func (s *DashboardService) accept(seq uint64) bool {
	if s.opts.DropStale && seq <= s.lastSeq {
		return false
	}
	if seq > s.lastSeq {
		s.lastSeq = seq
	}
	return true
}

// Apply renders a successfully fetched snapshot. It returns false when the
// completion was dropped as stale.
func (s *DashboardService) Apply(ctx context.Context, seq uint64, snap models.Snapshot) (models.Display, bool) {
	s.mu.Lock()
	if !s.accept(seq) {
		s.mu.Unlock()
		s.log.Debugw("stale_completion_dropped", "seq", seq)
		return models.Display{}, false
	}

	d := renderSnapshot(snap, s.opts.Tariff, s.opts.Currency)
	tr := s.ready.Observe(snap.Status)
	if tr == Activated {
		d.Status = readyMessage
	}
	d.UltimateActive = s.ready.Active()
	d.Seq = seq

	reconnected := s.link == linkDown
	s.link = linkUp
	s.display = d
	s.mu.Unlock()

	if reconnected {
		s.log.Infow("device_reconnected", "seq", seq)
		s.journal(ctx, models.EventReconnected, "Device reachable again", nil)
	}
	switch tr {
	case Activated:
		s.log.Infow("ultimate_activated", "seq", seq, "voltage_v", snap.VoltageV, "target_v", snap.TargetV)
		s.journal(ctx, models.EventReady, "Ultimate activated: target voltage reached", map[string]any{
			"voltage_v": finiteOrNil(snap.VoltageV),
			"target_v":  finiteOrNil(snap.TargetV),
		})
	case Cleared:
		s.log.Infow("ultimate_cleared", "seq", seq, "status", snap.Status)
		s.journal(ctx, models.EventReadyCleared, "Ultimate cleared: status "+snap.Status, map[string]any{
			"status": snap.Status,
		})
	}
	return d, true
}

// Fail renders the disconnected state and forces the ready flag to Idle.
func (s *DashboardService) Fail(ctx context.Context, seq uint64, cause error) (models.Display, bool) {
	s.mu.Lock()
	if !s.accept(seq) {
		s.mu.Unlock()
		s.log.Debugw("stale_failure_dropped", "seq", seq, "err", cause)
		return models.Display{}, false
	}

	tr := s.ready.Reset()
	d := unavailableDisplay(s.display.BarWidth, s.opts.Currency)
	d.Seq = seq

	disconnected := s.link != linkDown
	s.link = linkDown
	s.display = d
	s.mu.Unlock()

	s.log.Errorw("device_fetch_failed", "err", cause, "seq", seq)
	if disconnected {
		s.journal(ctx, models.EventDisconnected, "Device unreachable", map[string]any{
			"err": errString(cause),
		})
	}
	if tr == Cleared {
		s.journal(ctx, models.EventReadyCleared, "Ultimate cleared: device disconnected", nil)
	}
	return d, true
}

// journal appends an event; failures are logged and otherwise ignored.
func (s *DashboardService) journal(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	ev := models.GaugeEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("journal_append_failed", "err", err, "type", typ)
	}
}

// finiteOrNil keeps NaN/Inf out of JSON metadata.
func finiteOrNil(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
