// Package engine is the pure calculation core: a deterministic function of
// (rooms, devices, settings) with no storage, transport, or clock dependency.
package engine

import "solar_planner/internal/models"

// Average-year conventions used throughout; month/year figures are not
// calendar-accurate.
const (
	DaysPerYear   = 365.25
	MonthsPerYear = 12

	// ROICeiling is the display ceiling applied to ROI figures before they
	// leave the engine. Internally ROI may be +Inf (zero savings).
	ROICeiling = 999.0
)

// ComputeDeviceMetrics derives one device's daily energy and grid costs at the
// given tariff. Inputs are assumed validated at the inventory boundary
// (quantity > 0, power >= 0, usage hours in [0,24]); no error cases exist here.
func ComputeDeviceMetrics(d models.Device, rate float64) models.DeviceMetrics {
	powerKW := d.PowerW / 1000
	energy := powerKW * float64(d.Quantity) * d.UsageHours
	costDay := energy * rate
	return models.DeviceMetrics{
		EnergyKWhDay: energy,
		CostDay:      costDay,
		CostMonth:    costDay * DaysPerYear / MonthsPerYear,
		CostYear:     costDay * DaysPerYear,
	}
}
