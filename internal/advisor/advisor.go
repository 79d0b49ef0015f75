// Package advisor turns a building report into a prioritized action plan.
// Two implementations exist: a remote advisory service and a deterministic
// rule-based fallback that can never fail.
package advisor

import (
	"context"

	"solar_planner/internal/models"
)

// ROI thresholds (years) for the fixed action tiers.
const (
	ConvertThresholdYears = 5.0
	HybridThresholdYears  = 10.0
)

// Advisor derives a recommendation from a freshly computed building report.
type Advisor interface {
	Derive(ctx context.Context, report models.BuildingReport) (models.Recommendation, error)
}

// RoomAdvice is the per-room slice of the advisory request payload.
type RoomAdvice struct {
	RoomName         string  `json:"room_name"`
	YearlyCost       float64 `json:"yearly_cost"`
	RequiredCapacity float64 `json:"required_capacity"`
	ROIYears         float64 `json:"roi_years"`
	SuggestedAction  string  `json:"suggested_action"`
}

// BuildingTotals is the building-wide slice of the advisory request payload.
type BuildingTotals struct {
	TotalYearlyCost       float64 `json:"total_yearly_cost"`
	TotalRequiredCapacity float64 `json:"total_required_capacity"`
	TotalInstallationCost float64 `json:"total_installation_cost"`
	TotalROIYears         float64 `json:"total_roi_years"`
	LongTermSavings       float64 `json:"long_term_savings"`
}

// Request is the structured payload sent to the advisory service.
type Request struct {
	Rooms          []RoomAdvice   `json:"rooms"`
	BuildingTotals BuildingTotals `json:"building_totals"`
}

// ActionForROI maps a (clamped) ROI figure onto the fixed action tiers.
func ActionForROI(roi float64) string {
	switch {
	case roi < ConvertThresholdYears:
		return models.ActionConvert
	case roi < HybridThresholdYears:
		return models.ActionHybrid
	default:
		return models.ActionGrid
	}
}

// BuildRequest flattens a building report into the advisory payload.
func BuildRequest(report models.BuildingReport) Request {
	req := Request{
		Rooms: make([]RoomAdvice, 0, len(report.Rooms)),
		BuildingTotals: BuildingTotals{
			TotalYearlyCost:       report.Building.TotalCostYear,
			TotalRequiredCapacity: report.Building.TotalRequiredCapacityKW,
			TotalInstallationCost: report.Building.TotalInstallationCost,
			TotalROIYears:         report.Building.TotalROIYears,
			LongTermSavings:       report.Building.LongTermSavings,
		},
	}
	for _, r := range report.Rooms {
		req.Rooms = append(req.Rooms, RoomAdvice{
			RoomName:         r.Room.Name,
			YearlyCost:       r.Metrics.CostYear,
			RequiredCapacity: r.Metrics.RequiredCapacityKW,
			ROIYears:         r.Metrics.ROIYears,
			SuggestedAction:  ActionForROI(r.Metrics.ROIYears),
		})
	}
	return req
}
