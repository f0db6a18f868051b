package handlers

import (
	"context"
	"sync"
	"time"

	"energy_gauge/internal/models"
	"energy_gauge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	mu      sync.Mutex
	display models.Display
	calls   int
}

func (m *mockMonitoring) Display() models.Display {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.display
}

func (m *mockMonitoring) set(d models.Display) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.display = d
}

type mockEventLog struct {
	resp     []models.GaugeEvent
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.GaugeEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sampleDisplay() models.Display {
	return models.Display{
		BarWidth:        "62.5%",
		Timestamp:       "Time: 12:00:01",
		Voltage:         "Voltage: 2.5000 V",
		Current:         "Current: 10.0000 mA",
		Power:           "Power: 25.0000 mW",
		Energy:          "Total Energy (Integrated): 12.000000 J",
		PotentialEnergy: "Potential Energy (½CV²): 3.125000 J",
		Status:          "Status: CHARGING",
		EnergyKWh:       "Energy Generated: 0.000003332 kWh",
		Savings:         "Estimated Savings: 0.00001 บาท",
		Connected:       true,
		Seq:             7,
	}
}
