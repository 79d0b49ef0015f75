package models

// Derived metrics are recomputed in full from the current rooms/devices/settings
// snapshot on every pass; no derived field is ever mutated on its own.

// DeviceMetrics is the per-device energy and grid-cost breakdown.
type DeviceMetrics struct {
	EnergyKWhDay float64 `json:"energy_kwh_day"`
	CostDay      float64 `json:"cost_day"`
	CostMonth    float64 `json:"cost_month"` // cost_day * 365.25/12, average-year convention
	CostYear     float64 `json:"cost_year"`  // cost_day * 365.25
}

// RoomMetrics aggregates a room's device metrics and sizes its solar offset.
type RoomMetrics struct {
	EnergyKWhDay         float64 `json:"energy_kwh_day"`
	CostDay              float64 `json:"cost_day"`
	CostMonth            float64 `json:"cost_month"`
	CostYear             float64 `json:"cost_year"`
	AnnualConsumptionKWh float64 `json:"annual_consumption_kwh"`
	RequiredCapacityKW   float64 `json:"required_capacity_kw"`
	InstallationCost     float64 `json:"installation_cost"`
	YearlySavings        float64 `json:"yearly_savings"`
	ROIYears             float64 `json:"roi_years"` // clamped to <= 999
}

// RoomWithMetrics joins a room with its freshly derived metrics.
type RoomWithMetrics struct {
	Room    Room        `json:"room"`
	Metrics RoomMetrics `json:"metrics"`
}

// BuildingMetrics holds building-wide totals. ROI is re-derived from the
// totals, never summed across rooms.
type BuildingMetrics struct {
	TotalEnergyKWhDay       float64 `json:"total_energy_kwh_day"`
	TotalCostYear           float64 `json:"total_cost_year"`
	TotalRequiredCapacityKW float64 `json:"total_required_capacity_kw"`
	TotalInstallationCost   float64 `json:"total_installation_cost"`
	TotalROIYears           float64 `json:"total_roi_years"` // clamped to <= 999
	LongTermSavings         float64 `json:"long_term_savings"`
	PaybackYears            float64 `json:"payback_years"`
}

// BuildingReport is the output of a full recompute pass.
type BuildingReport struct {
	Rooms    []RoomWithMetrics `json:"rooms"`
	Building BuildingMetrics   `json:"building"`
}
