package service

import "solar_planner/internal/models"

// RoomParams creates a room.
type RoomParams struct {
	Name    string             `json:"name"`
	Purpose models.RoomPurpose `json:"purpose"`
}

// DeviceParams creates a device.
type DeviceParams struct {
	RoomID     string  `json:"room_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	PowerW     float64 `json:"power_w"`
	UsageHours float64 `json:"usage_hours"`
}

// DeviceUpdateParams is a partial device update; nil fields keep their prior
// value.
type DeviceUpdateParams struct {
	RoomID     *string  `json:"room_id,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	PowerW     *float64 `json:"power_w,omitempty"`
	UsageHours *float64 `json:"usage_hours,omitempty"`
}

// SettingsParams is a partial settings upsert with merge semantics; nil
// fields keep their prior (or default) value.
type SettingsParams struct {
	ElectricityRate  *float64 `json:"electricity_rate,omitempty"`
	SolarCostPerKW   *float64 `json:"solar_cost_per_kw,omitempty"`
	EfficiencyFactor *float64 `json:"efficiency_factor,omitempty"`
	SunlightHours    *float64 `json:"sunlight_hours,omitempty"`
	LifetimeYears    *int     `json:"lifetime_years,omitempty"`
	AnnualInflation  *float64 `json:"annual_inflation,omitempty"`
}
