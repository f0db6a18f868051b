package service

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"energy_gauge/internal/energy"
	"energy_gauge/internal/models"
)

// DefaultCurrency is the unit printed after the savings estimate.
const DefaultCurrency = "บาท"

const (
	readyMessage        = "ULTIMATE READY! (Target Voltage Reached)"
	disconnectedMessage = "Status: Disconnected! (Check IP/ESP32)"
	waitingMessage      = "Status: Waiting for device..."
	notAvailable        = "N/A"

	// a float64 has at most 1074 fractional decimal digits
	exactFractionDigits = 1100
)

// renderSnapshot formats every display region for a successful fetch.
func renderSnapshot(snap models.Snapshot, tariff energy.Tariff, currency string) models.Display {
	pct := energy.FillPercentage(snap.VoltageV, snap.TargetV)
	savings := tariff.Convert(snap.EnergyJoules)

	return models.Display{
		BarWidth:        numberString(pct) + "%",
		Timestamp:       "Time: " + snap.Timestamp,
		Voltage:         "Voltage: " + toFixed(snap.VoltageV, 4) + " V",
		Current:         "Current: " + toFixed(snap.CurrentMA, 4) + " mA",
		Power:           "Power: " + toFixed(snap.PowerMW, 4) + " mW",
		Energy:          "Total Energy (Integrated): " + toFixed(snap.EnergyJoules, 6) + " J",
		PotentialEnergy: "Potential Energy (½CV²): " + toFixed(snap.PotentialEJoules, 6) + " J",
		Status:          "Status: " + snap.Status,
		EnergyKWh:       "Energy Generated: " + toFixed(savings.KWh, 9) + " kWh",
		Savings:         "Estimated Savings: " + toFixed(savings.Baht, 5) + " " + currency,
		Connected:       true,
	}
}

// unavailableDisplay is the disconnected rendering. The bar keeps its width.
func unavailableDisplay(barWidth, currency string) models.Display {
	return models.Display{
		BarWidth:        barWidth,
		Timestamp:       "Time: " + notAvailable,
		Voltage:         "Voltage: " + notAvailable,
		Current:         "Current: " + notAvailable,
		Power:           "Power: " + notAvailable,
		Energy:          "Total Energy (Integrated): " + notAvailable,
		PotentialEnergy: "Potential Energy (½CV²): " + notAvailable,
		Status:          disconnectedMessage,
		EnergyKWh:       "Energy Generated: " + notAvailable + " kWh",
		Savings:         "Estimated Savings: " + notAvailable + " " + currency,
	}
}

// initialDisplay is shown before the first cycle completes.
func initialDisplay(currency string) models.Display {
	d := unavailableDisplay("0%", currency)
	d.Status = waitingMessage
	return d
}

// toFixed formats x with a fixed number of fraction digits, rounding the exact
// binary value half away from zero. NaN and infinities print as words.
func toFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.Abs(x) >= 1e21:
		return numberString(x)
	}

	if x == 0 {
		x = 0 // drop the sign of -0
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	exact := new(big.Float).SetFloat64(x).Text('f', exactFractionDigits)
	intPart, frac, _ := strings.Cut(exact, ".")

	kept := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		i := len(kept) - 1
		for ; i >= 0; i-- {
			if kept[i] == '9' {
				kept[i] = '0'
				continue
			}
			kept[i]++
			break
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept...)
		}
	}

	n := len(kept) - digits
	out := string(kept[:n])
	if digits > 0 {
		out += "." + string(kept[n:])
	}
	return sign + out
}

// numberString prints x the shortest way that round-trips, using exponent
// form outside [1e-6, 1e21).
func numberString(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	// Go prints "1e-07"; drop the exponent padding to get "1e-7"
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	expSign := exp[:1]
	expDigits := strings.TrimLeft(exp[1:], "0")
	if expDigits == "" {
		expDigits = "0"
	}
	return mant + "e" + expSign + expDigits
}
