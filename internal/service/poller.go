package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"energy_gauge/internal/logger"
	"energy_gauge/internal/models"
)

// DefaultPollInterval matches the board's refresh cadence.
const DefaultPollInterval = 200 * time.Millisecond

// PollerService fires one fetch-and-render cycle per tick. Cycles are not
// serialized: a slow device leaves several requests in flight at once.
type PollerService struct {
	fetcher    Fetcher
	renderer   Renderer
	publishers []Publisher
	log        *logger.Logger

	seq      atomic.Uint64
	inflight sync.WaitGroup
}

// NewPollerService wires a fetcher to a renderer. Publishers receive every
// accepted display.
func NewPollerService(fetcher Fetcher, renderer Renderer, log *logger.Logger, publishers ...Publisher) *PollerService {
	if log == nil {
		log = logger.Nop()
	}
	return &PollerService{
		fetcher:    fetcher,
		renderer:   renderer,
		publishers: publishers,
		log:        log,
	}
}

// Run starts a cycle immediately and then one per interval until ctx is
// canceled. It returns once in-flight cycles have finished.
func (p *PollerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	p.log.Infow("poller_started", "interval", interval.String())
	p.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			p.inflight.Wait()
			p.log.Infow("poller_stopped", "cycles", p.seq.Load())
			return
		case <-t.C:
			p.launch(ctx)
		}
	}
}

func (p *PollerService) launch(ctx context.Context) {
	seq := p.seq.Add(1)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.Cycle(ctx, seq)
	}()
}

// Cycle performs one fetch-and-render pass tagged with seq.
func (p *PollerService) Cycle(ctx context.Context, seq uint64) {
	var (
		d  models.Display
		ok bool
	)
	snap, err := p.fetcher.Fetch(ctx)
	switch {
	case err != nil && ctx.Err() != nil:
		// shutting down; the failure is ours, not the device's
		return
	case err != nil:
		d, ok = p.renderer.Fail(ctx, seq, err)
	default:
		d, ok = p.renderer.Apply(ctx, seq, snap)
	}
	if !ok {
		return
	}
	p.publish(ctx, d)
}

func (p *PollerService) publish(ctx context.Context, d models.Display) {
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, d); err != nil {
			p.log.Warnw("display_publish_failed", "err", err, "seq", d.Seq)
		}
	}
}
