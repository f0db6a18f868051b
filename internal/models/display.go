package models

// Display is the set of named regions the dashboard page renders.
// Region values are final strings; the page copies them into the DOM as-is.
type Display struct {
	BarWidth        string `json:"bar_width"` // e.g. "42.5%"
	Voltage         string `json:"voltage"`
	Current         string `json:"current"`
	Power           string `json:"power"`
	Energy          string `json:"energy"`
	PotentialEnergy string `json:"potential_energy"`
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	EnergyKWh       string `json:"energy_kwh"`
	Savings         string `json:"savings"`
	UltimateActive  bool   `json:"ultimate_active"`
	Connected       bool   `json:"connected"`
	Seq             uint64 `json:"seq"`
}
