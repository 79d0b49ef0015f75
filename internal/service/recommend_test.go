package service

import (
	"context"
	"errors"
	"testing"

	"solar_planner/internal/advisor"
	"solar_planner/internal/models"
)

type stubAdvisor struct {
	rec   models.Recommendation
	err   error
	calls int
}

func (a *stubAdvisor) Derive(_ context.Context, _ models.BuildingReport) (models.Recommendation, error) {
	a.calls++
	return a.rec, a.err
}

type stubPlanner struct {
	report models.BuildingReport
	err    error
}

func (p *stubPlanner) Report(_ context.Context, _ int) (models.BuildingReport, error) {
	return p.report, p.err
}

func recommendReport() models.BuildingReport {
	return models.BuildingReport{
		Rooms: []models.RoomWithMetrics{
			{Room: models.Room{ID: "r1", Name: "Lab A"}, Metrics: models.RoomMetrics{ROIYears: 4.2}},
			{Room: models.Room{ID: "r2", Name: "Office B"}, Metrics: models.RoomMetrics{ROIYears: 12.5}},
		},
	}
}

func TestRecommendService_PrimaryWins(t *testing.T) {
	want := models.Recommendation{Summary: "from advisory", Source: models.SourceAdvisory}
	primary := &stubAdvisor{rec: want}
	fallback := &stubAdvisor{}
	svc := NewRecommendService(&stubPlanner{report: recommendReport()}, primary, fallback)

	got, err := svc.Derive(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary != "from advisory" || got.Degraded {
		t.Errorf("unexpected recommendation: %+v", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls: want exactly 1 (no retry), got %d", primary.calls)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not run on success, got %d calls", fallback.calls)
	}
}

// Any advisory failure must yield a rule-based plan covering every room,
// never an error.
func TestRecommendService_FallsBackOnAdvisoryFailure(t *testing.T) {
	report := recommendReport()
	primary := &stubAdvisor{err: errors.New("connection refused")}
	svc := NewRecommendService(&stubPlanner{report: report}, primary, advisor.NewRuleBased())

	got, err := svc.Derive(context.Background(), 7)
	if err != nil {
		t.Fatalf("fallback path must never fail: %v", err)
	}
	if !got.Degraded {
		t.Errorf("Degraded: want true")
	}
	if len(got.Rooms) != len(report.Rooms) {
		t.Fatalf("room count: want %d, got %d", len(report.Rooms), len(got.Rooms))
	}
	allowed := map[string]bool{
		models.ActionConvertRuleBased: true,
		models.ActionGridRuleBased:    true,
	}
	for _, r := range got.Rooms {
		if !allowed[r.Suggestion] {
			t.Errorf("%s: suggestion %q outside the rule-based set", r.RoomName, r.Suggestion)
		}
	}
	if got.TotalSavings != 0 || got.BreakevenPeriod != 0 || got.CapacityNeeded != 0 {
		t.Errorf("aggregates must be zeroed in fallback: %+v", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls: want exactly 1 (no retry), got %d", primary.calls)
	}
}

func TestRecommendService_StorageErrorSurfaces(t *testing.T) {
	svc := NewRecommendService(&stubPlanner{err: errors.New("db down")}, &stubAdvisor{}, &stubAdvisor{})
	if _, err := svc.Derive(context.Background(), 7); err == nil {
		t.Fatalf("expected storage error to surface")
	}
}
