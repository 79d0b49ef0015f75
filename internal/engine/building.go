package engine

import "solar_planner/internal/models"

// ComputeBuildingTotals runs a full recompute pass: per-room metrics for every
// room, then building-wide totals. This is one of the engine's two entry
// points and is a pure function of its arguments.
func ComputeBuildingTotals(rooms []models.Room, devices []models.Device, s models.SolarSettings) models.BuildingReport {
	report := models.BuildingReport{
		Rooms: make([]models.RoomWithMetrics, 0, len(rooms)),
	}

	var b models.BuildingMetrics
	for _, room := range rooms {
		rm := ComputeRoomMetrics(room, devices, s)
		report.Rooms = append(report.Rooms, models.RoomWithMetrics{Room: room, Metrics: rm})

		b.TotalEnergyKWhDay += rm.EnergyKWhDay
		b.TotalCostYear += rm.CostYear
		b.TotalRequiredCapacityKW += rm.RequiredCapacityKW
		b.TotalInstallationCost += rm.InstallationCost
	}

	// ROI is not additive across rooms; re-derive it from building totals.
	b.TotalROIYears = clampROI(roiYears(b.TotalInstallationCost, b.TotalCostYear))
	b.LongTermSavings = longTermSavings(b.TotalCostYear, b.TotalInstallationCost, s)
	b.PaybackYears = b.TotalROIYears

	report.Building = b
	return report
}

// longTermSavings projects what the grid would have cost over the system's
// lifetime, minus the upfront solar spend. Nominal figures: each year's grid
// cost is accumulated and then inflated for the next year, so year one is
// uninflated. No time-value discounting and no panel degradation; the figure
// stays explainable to non-financial users.
func longTermSavings(totalCostYearGrid, totalInstallationCost float64, s models.SolarSettings) float64 {
	var future float64
	yearCost := totalCostYearGrid
	for i := 0; i < s.LifetimeYears; i++ {
		future += yearCost
		yearCost *= 1 + s.AnnualInflation
	}
	return future - totalInstallationCost
}
