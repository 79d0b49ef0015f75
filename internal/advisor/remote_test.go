package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solar_planner/internal/models"
)

func TestRemote_Derive_Success(t *testing.T) {
	t.Parallel()

	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"summary":          "Convert Lab A first.",
			"total_savings":    2_500_000,
			"breakeven_period": 4.3,
			"capacity_needed":  4.4,
			"room_recommendations": []map[string]string{
				{"room_name": "Lab A", "suggestion": "Convert to Solar", "reasoning": "fast payback"},
				{"room_name": "Office B", "suggestion": "Hybrid Model", "reasoning": "moderate payback"},
				{"room_name": "Storage", "suggestion": "Stay on Grid", "reasoning": "no load"},
			},
		})
	}))
	defer srv.Close()

	rec, err := NewRemote(srv.URL, time.Second).Derive(context.Background(), reportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Degraded {
		t.Errorf("Degraded: want false")
	}
	if rec.Source != models.SourceAdvisory {
		t.Errorf("Source: want %q, got %q", models.SourceAdvisory, rec.Source)
	}
	if rec.Summary != "Convert Lab A first." {
		t.Errorf("Summary: got %q", rec.Summary)
	}
	if len(rec.Rooms) != 3 {
		t.Fatalf("rooms: want 3, got %d", len(rec.Rooms))
	}
	if rec.Rooms[0].Suggestion != "Convert to Solar" {
		t.Errorf("first suggestion: got %q", rec.Rooms[0].Suggestion)
	}

	// The outbound payload carries the threshold-derived action tags.
	if len(gotReq.Rooms) != 3 {
		t.Fatalf("request rooms: want 3, got %d", len(gotReq.Rooms))
	}
	if gotReq.Rooms[0].SuggestedAction != models.ActionConvert {
		t.Errorf("Lab A action: want %q, got %q", models.ActionConvert, gotReq.Rooms[0].SuggestedAction)
	}
	if gotReq.Rooms[1].SuggestedAction != models.ActionHybrid {
		t.Errorf("Office B action: want %q, got %q", models.ActionHybrid, gotReq.Rooms[1].SuggestedAction)
	}
	if gotReq.BuildingTotals.TotalYearlyCost != 71170.5 {
		t.Errorf("building totals not forwarded: %+v", gotReq.BuildingTotals)
	}
}

func TestRemote_Derive_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"summary": "truncated`))
			},
		},
		{
			name: "missing summary fails schema validation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"room_recommendations": []map[string]string{
						{"room_name": "Lab A", "suggestion": "Convert to Solar"},
						{"room_name": "Office B", "suggestion": "Hybrid Model"},
						{"room_name": "Storage", "suggestion": "Stay on Grid"},
					},
				})
			},
		},
		{
			name: "room count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"summary": "partial",
					"room_recommendations": []map[string]string{
						{"room_name": "Lab A", "suggestion": "Convert to Solar"},
					},
				})
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := NewRemote(srv.URL, time.Second).Derive(context.Background(), reportFixture())
			if err == nil {
				t.Fatalf("expected full-call failure, got nil error")
			}
		})
	}
}

func TestRemote_Derive_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewRemote(srv.URL, time.Second).Derive(context.Background(), reportFixture())
	if err == nil {
		t.Fatalf("expected network error, got nil")
	}
}
