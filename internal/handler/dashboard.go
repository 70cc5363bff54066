package handler

import (
	"net/http"

	"github.com/KOFI-GYIMAH/commit-risk/internal/analytics"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

// getStats godoc
// @Summary Dashboard statistics
// @Description Totals, per-level counts of latest assessments, average score and 24h activity
// @Tags Dashboard
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param repo_id query int false "Restrict to one repository"
// @Success 200 {object} analytics.Stats
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Router /dashboard/stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	scope, err := scopeFor(r, ownerID)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), scope)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// getRiskDistribution godoc
// @Summary Risk distribution
// @Description Share of commits per risk level and a ten-bucket score histogram
// @Tags Dashboard
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param repo_id query int false "Restrict to one repository"
// @Success 200 {object} analytics.Distribution
// @Router /dashboard/risk-distribution [get]
func (h *Handler) getRiskDistribution(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	scope, err := scopeFor(r, ownerID)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	dist, err := h.dashboard.RiskDistribution(r.Context(), scope)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dist)
}

// getRecentActivity godoc
// @Summary Recent activity
// @Description Most recently analyzed commits with their latest assessment
// @Tags Dashboard
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param limit query int false "Number of items (1-50)" default(10)
// @Param repo_id query int false "Restrict to one repository"
// @Success 200 {object} ActivityResponse
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid limit"
// @Router /dashboard/recent-activity [get]
func (h *Handler) getRecentActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	scope, err := scopeFor(r, ownerID)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", analytics.DefaultActivityLimit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	items, err := h.dashboard.RecentActivity(r.Context(), scope, limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ActivityResponse{Items: items, Count: len(items)})
}

// getCommitsWithRisk godoc
// @Summary Commits with risk
// @Description Filterable, sortable, paginated table of commits with their latest assessment
// @Tags Dashboard
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size (1-200)" default(50)
// @Param risk_level query string false "LOW, MEDIUM or HIGH"
// @Param sort_by query string false "created_at, risk_score, files_changed or lines_added" default(created_at)
// @Param sort_order query string false "asc or desc" default(desc)
// @Param search query string false "Substring of message or SHA"
// @Param repo_id query int false "Restrict to one repository"
// @Success 200 {object} service.CommitRiskPage
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid filter or paging"
// @Router /dashboard/commits-with-risk [get]
func (h *Handler) getCommitsWithRisk(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	scope, err := scopeFor(r, ownerID)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", analytics.DefaultListLimit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	query := r.URL.Query()
	page, err := h.dashboard.CommitsWithRisk(r.Context(), scope, analytics.ListQuery{
		RiskLevel: query.Get("risk_level"),
		Search:    query.Get("search"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
