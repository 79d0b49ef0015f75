package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errGetReport       = "failed to compute report"
	errRecommendations = "failed to derive recommendations"
	errAdvisoryBusy    = "a recommendation request is already in flight"
)

// @Summary      Building report
// @Description  Recomputes per-room and building-wide metrics from the
// @Description  current inventory and settings. Nothing is cached.
// @Tags         planner
// @Produce      json
// @Success      200  {object}  models.BuildingReport
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/report [get]
// @Security     BearerAuth
func (h *Handler) getReport(c *gin.Context) {
	report, err := h.services.Planner.Report(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, errGetReport, "report_failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Derive recommendations
// @Description  Tries the external advisory service once; on any failure the
// @Description  plan is recomputed locally from ROI rules and flagged degraded.
// @Tags         planner
// @Produce      json
// @Success      200  {object}  models.Recommendation
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "request already in flight"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/recommendations [post]
// @Security     BearerAuth
func (h *Handler) deriveRecommendations(c *gin.Context) {
	if !h.advisoryBusy.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": errAdvisoryBusy})
		return
	}
	defer h.advisoryBusy.Store(false)

	rec, err := h.services.Recommender.Derive(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, errRecommendations, "recommendations_failed", err)
		return
	}
	if rec.Degraded && h.log != nil {
		h.log.Warnw("recommendations_degraded", "source", rec.Source)
	}
	c.JSON(http.StatusOK, rec)
}
