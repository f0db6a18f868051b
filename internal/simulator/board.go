// Package simulator stands in for the storage board when no hardware is on
// the network. It charges a capacitor toward the target voltage, holds it at
// ULTIMATE_READY for a while, discharges, and starts over.
package simulator

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"energy_gauge/internal/models"

	"github.com/gin-gonic/gin"
)

// ----------- Simulation constants -----------
const (
	DefaultTargetV      = 5.0   // V
	DefaultCapacitanceF = 1.0   // F
	ChargeCurrentMA     = 120.0 // mA while charging
	DischargeCurrentMA  = 80.0  // mA drawn while discharging
	ReadyHold           = 3 * time.Second
	ReadyToleranceV     = 0.01

	timestampLayout = "15:04:05"
)

// Board statuses as reported on the wire.
const (
	StatusCharging    = "CHARGING"
	StatusReady       = "ULTIMATE_READY"
	StatusDischarging = "DISCHARGING"
)

// Board is a simulated supercapacitor bank. Safe for concurrent use.
type Board struct {
	mu sync.Mutex

	targetV      float64
	capacitanceF float64

	voltageV  float64
	currentMA float64
	energyJ   float64
	status    string
	readyLeft time.Duration
	offline   bool
	updatedAt time.Time
}

// NewBoard returns an empty board that starts charging at now.
func NewBoard(targetV, capacitanceF float64, now time.Time) *Board {
	if targetV <= 0 {
		targetV = DefaultTargetV
	}
	if capacitanceF <= 0 {
		capacitanceF = DefaultCapacitanceF
	}
	return &Board{
		targetV:      targetV,
		capacitanceF: capacitanceF,
		currentMA:    ChargeCurrentMA,
		status:       StatusCharging,
		updatedAt:    now,
	}
}

// Run advances the board every tick until ctx is canceled.
func (b *Board) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			b.Step(now)
		}
	}
}

// Step advances the simulation to now.
func (b *Board) Step(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.updatedAt)
	if elapsed <= 0 {
		return
	}
	b.updatedAt = now

	switch b.status {
	case StatusCharging:
		b.charge(elapsed.Seconds())
	case StatusReady:
		b.hold(elapsed)
	case StatusDischarging:
		b.discharge(elapsed.Seconds())
	default:
		b.status = StatusCharging
	}
}

// charge raises the voltage at constant current and integrates delivered energy.
func (b *Board) charge(sec float64) {
	b.currentMA = ChargeCurrentMA
	prev := b.voltageV
	b.voltageV = math.Min(b.targetV, prev+(ChargeCurrentMA/1000)*sec/b.capacitanceF)

	// trapezoid over the step; current in A
	avgV := (prev + b.voltageV) / 2
	b.energyJ += avgV * (ChargeCurrentMA / 1000) * sec

	if b.voltageV >= b.targetV-ReadyToleranceV {
		b.voltageV = b.targetV
		b.status = StatusReady
		b.readyLeft = ReadyHold
		b.currentMA = 0
	}
}

// hold keeps the bank topped up until the hold time runs out.
func (b *Board) hold(elapsed time.Duration) {
	b.currentMA = 0
	b.readyLeft -= elapsed
	if b.readyLeft <= 0 {
		b.readyLeft = 0
		b.status = StatusDischarging
		b.currentMA = -DischargeCurrentMA
	}
}

func (b *Board) discharge(sec float64) {
	b.currentMA = -DischargeCurrentMA
	b.voltageV -= (DischargeCurrentMA / 1000) * sec / b.capacitanceF
	if b.voltageV <= 0 {
		b.voltageV = 0
		b.status = StatusCharging
		b.currentMA = ChargeCurrentMA
	}
}

// SetOffline makes the HTTP handler answer 503, as a browned-out board would.
func (b *Board) SetOffline(offline bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offline = offline
}

// Snapshot returns the reading the board would report at its last step.
func (b *Board) Snapshot() models.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		VoltageV:         b.voltageV,
		CurrentMA:        b.currentMA,
		PowerMW:          b.voltageV * b.currentMA,
		EnergyJoules:     b.energyJ,
		PotentialEJoules: 0.5 * b.capacitanceF * b.voltageV * b.voltageV,
		Status:           b.status,
		TargetV:          b.targetV,
		Timestamp:        b.updatedAt.Format(timestampLayout),
	}
}

// Handler serves the board's JSON reading at GET /.
func (b *Board) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", func(c *gin.Context) {
		b.mu.Lock()
		offline := b.offline
		snap := b.snapshotLocked()
		b.mu.Unlock()

		if offline {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "board offline"})
			return
		}
		c.JSON(http.StatusOK, snap)
	})
	return router
}
