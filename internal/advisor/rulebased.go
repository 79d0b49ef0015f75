package advisor

import (
	"context"
	"fmt"
	"time"

	"solar_planner/internal/models"
)

const degradedSummary = "Advisory service unavailable; recommendations were derived offline from ROI rules."

// RuleBased is the deterministic fallback. It has no external dependency and
// never returns an error: the worst outcome of a recommendation pass is this
// degraded, rule-derived plan.
type RuleBased struct{}

var _ Advisor = (*RuleBased)(nil)

func NewRuleBased() *RuleBased { return &RuleBased{} }

// Derive applies a binary five-year split per room. Aggregate savings,
// breakeven and capacity are zeroed; only the per-room actions carry signal.
func (a *RuleBased) Derive(_ context.Context, report models.BuildingReport) (models.Recommendation, error) {
	rec := models.Recommendation{
		Summary:     degradedSummary,
		Rooms:       make([]models.RoomRecommendation, 0, len(report.Rooms)),
		Source:      models.SourceRuleBased,
		Degraded:    true,
		GeneratedAt: time.Now().UTC(),
	}

	for _, r := range report.Rooms {
		roi := r.Metrics.ROIYears
		suggestion := models.ActionGridRuleBased
		reasoning := fmt.Sprintf("Estimated payback of %.1f years exceeds the %.0f-year conversion threshold.",
			roi, ConvertThresholdYears)
		if roi < ConvertThresholdYears {
			suggestion = models.ActionConvertRuleBased
			reasoning = fmt.Sprintf("Estimated payback of %.1f years is under the %.0f-year conversion threshold.",
				roi, ConvertThresholdYears)
		}
		rec.Rooms = append(rec.Rooms, models.RoomRecommendation{
			RoomName:   r.Room.Name,
			Suggestion: suggestion,
			Reasoning:  reasoning,
		})
	}

	return rec, nil
}
