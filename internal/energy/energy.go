// Package energy holds the unit conversions used by the gauge.
package energy

import "math"

const (
	// JouleToKWh converts joules to kilowatt-hours (1 J = 2.777e-7 kWh).
	JouleToKWh = 2.777e-7
	// CostPerKWhBaht is the average tariff used for the savings estimate.
	CostPerKWhBaht = 4.0
)

// Savings is the monetary view of an energy quantity.
type Savings struct {
	KWh  float64 `json:"kwh"`
	Baht float64 `json:"baht"`
}

// Tariff converts joules into kWh and cost.
type Tariff struct {
	JouleToKWh float64
	CostPerKWh float64
}

// DefaultTariff uses the package constants.
var DefaultTariff = Tariff{JouleToKWh: JouleToKWh, CostPerKWh: CostPerKWhBaht}

// Convert applies the tariff. NaN and Inf inputs propagate.
func (t Tariff) Convert(joules float64) Savings {
	kwh := joules * t.JouleToKWh
	return Savings{
		KWh:  kwh,
		Baht: kwh * t.CostPerKWh,
	}
}

// Convert applies DefaultTariff.
func Convert(joules float64) Savings {
	return DefaultTariff.Convert(joules)
}

// FillPercentage is voltage as a share of target, clamped to [0, 100].
// NaN propagates through the clamp.
func FillPercentage(voltage, target float64) float64 {
	pct := voltage / target * 100
	return math.Min(100, math.Max(0, pct))
}
