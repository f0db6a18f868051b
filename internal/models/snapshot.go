package models

// Snapshot is one measurement read from the device. Numeric fields that were
// missing or not numeric hold NaN.
type Snapshot struct {
	VoltageV         float64 `json:"voltage_V"`
	CurrentMA        float64 `json:"current_mA"`
	PowerMW          float64 `json:"power_mW"`
	EnergyJoules     float64 `json:"energy_Joules"`     // integrated, maintained by the device
	PotentialEJoules float64 `json:"potentialE_Joules"` // ½CV², computed by the device
	Status           string  `json:"status"`
	TargetV          float64 `json:"target_V"`
	Timestamp        string  `json:"timestamp"` // opaque, shown verbatim
}
