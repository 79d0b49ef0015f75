package service

import (
	"context"

	"solar_planner/internal/advisor"
	"solar_planner/internal/models"
)

// RecommendService derives the action plan from a fresh building report.
// The advisory service is tried exactly once per invocation; any failure
// (network, malformed response, schema violation) switches to the local
// rule-based path, which cannot fail. The degraded result is surfaced via
// Recommendation.Degraded, never as an error to the caller.
type RecommendService struct {
	planner  Planner
	primary  advisor.Advisor
	fallback advisor.Advisor
}

func NewRecommendService(planner Planner, primary, fallback advisor.Advisor) *RecommendService {
	return &RecommendService{planner: planner, primary: primary, fallback: fallback}
}

// Derive recomputes the report and runs the advisory strategy. Only a storage
// failure while snapshotting can surface as an error.
func (s *RecommendService) Derive(ctx context.Context, userID int) (models.Recommendation, error) {
	report, err := s.planner.Report(ctx, userID)
	if err != nil {
		return models.Recommendation{}, err
	}

	rec, err := s.primary.Derive(ctx, report)
	if err == nil {
		return rec, nil
	}
	return s.fallback.Derive(ctx, report)
}
