package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"solar_planner/internal/models"
)

const maxResponseBytes = 1 << 20 // 1 MB

// response is the advisory service's contract. The service is untrusted:
// anything that does not validate against this shape is a full-call failure,
// never a partial success.
type response struct {
	Summary             string               `json:"summary" validate:"required"`
	TotalSavings        float64              `json:"total_savings"`
	BreakevenPeriod     float64              `json:"breakeven_period"`
	CapacityNeeded      float64              `json:"capacity_needed"`
	RoomRecommendations []roomRecommendation `json:"room_recommendations" validate:"required,dive"`
}

type roomRecommendation struct {
	RoomName   string `json:"room_name" validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
	Reasoning  string `json:"reasoning"`
}

// Remote calls the external advisory service. A single attempt per
// invocation, no retry; transport timeout is the only cancellation.
type Remote struct {
	url      string
	client   *http.Client
	validate *validator.Validate
}

var _ Advisor = (*Remote)(nil)

// NewRemote builds a remote advisor for the given endpoint. A zero timeout
// falls back to 30s.
func NewRemote(url string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Remote{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
}

// Derive posts the structured payload and decodes the advisory response.
// The response must cover every room supplied or the call fails.
func (r *Remote) Derive(ctx context.Context, report models.BuildingReport) (models.Recommendation, error) {
	payload := BuildRequest(report)

	body, err := json.Marshal(payload)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("marshal advisory request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("build advisory request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := r.client.Do(httpReq)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("call advisory service: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return models.Recommendation{}, fmt.Errorf("advisory service returned status %d", httpResp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("read advisory response: %w", err)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.Recommendation{}, fmt.Errorf("decode advisory response: %w", err)
	}
	if err := r.validate.Struct(resp); err != nil {
		return models.Recommendation{}, fmt.Errorf("advisory response failed schema validation: %w", err)
	}
	if len(resp.RoomRecommendations) != len(payload.Rooms) {
		return models.Recommendation{}, fmt.Errorf(
			"advisory response covers %d rooms, expected %d",
			len(resp.RoomRecommendations), len(payload.Rooms))
	}

	rec := models.Recommendation{
		Summary:         resp.Summary,
		TotalSavings:    resp.TotalSavings,
		BreakevenPeriod: resp.BreakevenPeriod,
		CapacityNeeded:  resp.CapacityNeeded,
		Rooms:           make([]models.RoomRecommendation, 0, len(resp.RoomRecommendations)),
		Source:          models.SourceAdvisory,
		GeneratedAt:     time.Now().UTC(),
	}
	for _, rr := range resp.RoomRecommendations {
		rec.Rooms = append(rec.Rooms, models.RoomRecommendation{
			RoomName:   rr.RoomName,
			Suggestion: rr.Suggestion,
			Reasoning:  rr.Reasoning,
		})
	}
	return rec, nil
}
