package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"solar_planner/internal/models"
	"solar_planner/internal/service"
)

func TestGetReport(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	planner := &mockPlanner{report: models.BuildingReport{
		Building: models.BuildingMetrics{
			TotalEnergyKWhDay:       18,
			TotalRequiredCapacityKW: 3.6,
		},
	}}
	s := &service.Service{Authorization: auth, Planner: planner}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/report", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("report status=%d, body=%s", w.Code, w.Body.String())
	}
	var report models.BuildingReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Building.TotalEnergyKWhDay != 18 || report.Building.TotalRequiredCapacityKW != 3.6 {
		t.Fatalf("unexpected report: %+v", report.Building)
	}

	planner.err = errors.New("db down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/report", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on planner failure, got %d", w.Code)
	}
}

func TestDeriveRecommendations(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	rec := &mockRecommender{rec: models.Recommendation{
		Summary: "Convert high-usage rooms to solar",
		Source:  models.SourceAdvisory,
	}}
	s := &service.Service{Authorization: auth, Recommender: rec}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/recommendations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out models.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal recommendation: %v", err)
	}
	if out.Source != models.SourceAdvisory || out.Degraded {
		t.Fatalf("unexpected recommendation: %+v", out)
	}
	if rec.calls != 1 {
		t.Fatalf("Derive calls=%d, want 1", rec.calls)
	}
}

// blockingRecommender parks until released, so a test can hold one request
// in flight while issuing another.
type blockingRecommender struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingRecommender) Derive(ctx context.Context, _ int) (models.Recommendation, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return models.Recommendation{Source: models.SourceAdvisory}, nil
}

func TestDeriveRecommendations_SecondRequestWhileBusyIsRejected(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	rec := &blockingRecommender{started: make(chan struct{}, 1), release: make(chan struct{})}
	s := &service.Service{Authorization: auth, Recommender: rec}
	r := newTestRouter(s)

	var wg sync.WaitGroup
	wg.Add(1)
	first := httptest.NewRecorder()
	go func() {
		defer wg.Done()
		r.ServeHTTP(first, authedRequest(http.MethodPost, "/api/v1/recommendations", nil))
	}()

	select {
	case <-rec.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the recommender")
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, authedRequest(http.MethodPost, "/api/v1/recommendations", nil))
	if second.Code != http.StatusConflict {
		t.Fatalf("concurrent request: got %d, want %d", second.Code, http.StatusConflict)
	}

	close(rec.release)
	wg.Wait()
	if first.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want %d", first.Code, http.StatusOK)
	}

	// Once the slot is free again the endpoint accepts new requests.
	third := httptest.NewRecorder()
	r.ServeHTTP(third, authedRequest(http.MethodPost, "/api/v1/recommendations", nil))
	if third.Code != http.StatusOK {
		t.Fatalf("follow-up request: got %d, want %d", third.Code, http.StatusOK)
	}
}
