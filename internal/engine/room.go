package engine

import (
	"math"

	"solar_planner/internal/models"
)

// annualGenerationPerKW is the yearly energy yield (kWh) of 1 kW of nameplate
// capacity under the configured sunlight and derating assumptions.
func annualGenerationPerKW(s models.SolarSettings) float64 {
	return DaysPerYear * s.SunlightHours * s.EfficiencyFactor
}

// roiYears is installation cost over yearly savings, +Inf when savings is zero.
// The unclamped value exists only to decide the clamp.
func roiYears(installationCost, yearlySavings float64) float64 {
	if yearlySavings > 0 {
		return installationCost / yearlySavings
	}
	return math.Inf(1)
}

// clampROI applies the display ceiling. Values already at or below the ceiling
// pass through unchanged.
func clampROI(roi float64) float64 {
	return math.Min(roi, ROICeiling)
}

// ComputeRoomMetrics aggregates the room's devices and sizes a solar system to
// fully offset its consumption. Sizing is an annual energy balance (total kWh
// needed over kWh a 1 kW system yields per year), not peak-power sizing; this
// is a planning figure, not an electrical design one.
//
// Devices whose RoomID does not match the room are ignored. Zero-consumption
// rooms yield zero capacity and zero cost; zero sunlight or efficiency yields
// zero capacity rather than a division blowup.
func ComputeRoomMetrics(room models.Room, devices []models.Device, s models.SolarSettings) models.RoomMetrics {
	var m models.RoomMetrics
	for _, d := range devices {
		if d.RoomID != room.ID {
			continue
		}
		dm := ComputeDeviceMetrics(d, s.ElectricityRate)
		m.EnergyKWhDay += dm.EnergyKWhDay
		m.CostDay += dm.CostDay
		m.CostMonth += dm.CostMonth
		m.CostYear += dm.CostYear
	}

	m.AnnualConsumptionKWh = m.EnergyKWhDay * DaysPerYear

	if gen := annualGenerationPerKW(s); gen > 0 {
		m.RequiredCapacityKW = math.Max(0, m.AnnualConsumptionKWh/gen)
	}
	m.InstallationCost = m.RequiredCapacityKW * s.SolarCostPerKW

	// Yearly savings is the grid cost avoided by a full solar offset.
	m.YearlySavings = m.CostYear
	m.ROIYears = clampROI(roiYears(m.InstallationCost, m.YearlySavings))

	return m
}
