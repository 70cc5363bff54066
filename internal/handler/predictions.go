package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

// createPrediction godoc
// @Summary Analyze a commit
// @Description Upserts the commit into one of the caller's repositories, scores it and stores a new assessment
// @Tags Predictions
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param request body PredictionRequest true "Commit to analyze"
// @Success 201 {object} service.Prediction
// @Failure 400 {object} errors.HTTPErrorResponse "Malformed JSON"
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid features or model version"
// @Router /predictions [post]
func (h *Handler) createPrediction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req PredictionRequest
	if err := decodeBody(r, &req); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	prediction, err := h.analysis.Analyze(r.Context(), ownerID, req.toAnalyzeRequest())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, prediction)
}

// getPrediction godoc
// @Summary Get latest prediction
// @Description Returns the newest assessment of a commit, optionally for one model version
// @Tags Predictions
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param sha path string true "Commit SHA"
// @Param model_version query string false "Model version"
// @Success 200 {object} service.Prediction
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown commit or no assessment"
// @Router /predictions/{sha} [get]
func (h *Handler) getPrediction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	sha := mux.Vars(r)["sha"]
	prediction, err := h.analysis.Latest(r.Context(), ownerID, sha, r.URL.Query().Get("model_version"))
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// listPredictions godoc
// @Summary List predictions
// @Description Lists every stored assessment of the caller's commits, newest first
// @Tags Predictions
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size (1-200)" default(50)
// @Success 200 {object} PredictionPage
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid paging"
// @Router /predictions [get]
func (h *Handler) listPredictions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultPageLimit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	items, total, err := h.analysis.List(r.Context(), ownerID, skip, limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Debug("Listed %d of %d predictions for owner %d", len(items), total, ownerID)
	writeJSON(w, http.StatusOK, PredictionPage{Items: items, Total: total, Skip: skip, Limit: limit})
}

// listModels godoc
// @Summary List model versions
// @Tags Predictions
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Success 200 {object} service.ModelsInfo
// @Router /models [get]
func (h *Handler) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analysis.Models())
}
