package models

import "time"

// Suggested action tags. The advisory payload uses the plain tiers; the
// rule-based fallback marks its output explicitly.
const (
	ActionConvert = "Convert to Solar"
	ActionHybrid  = "Hybrid Model"
	ActionGrid    = "Stay on Grid"

	ActionConvertRuleBased = "Convert to Solar (Rule-Based)"
	ActionGridRuleBased    = "Stay on Grid (Rule-Based)"
)

// Recommendation sources.
const (
	SourceAdvisory  = "advisory"
	SourceRuleBased = "rule-based"
)

// RoomRecommendation is one room's entry in the action plan.
type RoomRecommendation struct {
	RoomName   string `json:"room_name"`
	Suggestion string `json:"suggestion"`
	Reasoning  string `json:"reasoning"`
}

// Recommendation is the prioritized action plan derived from a building report.
// Degraded is set when the advisory service could not be used and the plan was
// recomputed locally from ROI rules.
type Recommendation struct {
	Summary         string               `json:"summary"`
	TotalSavings    float64              `json:"total_savings"`
	BreakevenPeriod float64              `json:"breakeven_period"`
	CapacityNeeded  float64              `json:"capacity_needed"`
	Rooms           []RoomRecommendation `json:"rooms"`
	Source          string               `json:"source"` // "advisory" | "rule-based"
	Degraded        bool                 `json:"degraded"`
	GeneratedAt     time.Time            `json:"generated_at"`
}
