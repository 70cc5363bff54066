package handler

import (
	"net/http"

	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

const defaultCommitsPerPage = 30

// addRepository godoc
// @Summary Register a repository
// @Description Registers owner/name for the caller, pulling metadata from GitHub when sync is enabled
// @Tags Repository
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param repository body AddRepositoryRequest true "Repository to add"
// @Success 201 {object} models.Repository
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid repository name"
// @Failure 502 {object} errors.HTTPErrorResponse "GitHub unavailable"
// @Router /repositories [post]
func (h *Handler) addRepository(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req AddRepositoryRequest
	if err := decodeBody(r, &req); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	repo, err := h.repositories.Import(r.Context(), ownerID, req.FullName)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, repo)
}

// listRepositories godoc
// @Summary List repositories
// @Tags Repository
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Success 200 {array} models.Repository
// @Router /repositories [get]
func (h *Handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	repos, err := h.repositories.List(r.Context(), ownerID)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

// getRepository godoc
// @Summary Get a repository
// @Tags Repository
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param id path int true "Repository id"
// @Success 200 {object} models.Repository
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Router /repositories/{id} [get]
func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	repo, err := h.repositories.Get(r.Context(), ownerID, id)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repo)
}

// listRepositoryCommits godoc
// @Summary Commit history
// @Description Reads one page of commits from GitHub for a registered repository. Nothing is stored or scored.
// @Tags Repository
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param id path int true "Repository id"
// @Param branch query string false "Branch, defaults to the repository default branch"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Commits per page (1-100)" default(30)
// @Success 200 {object} service.CommitHistory
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Failure 409 {object} errors.HTTPErrorResponse "Sync disabled"
// @Failure 422 {object} errors.HTTPErrorResponse "Invalid paging"
// @Failure 502 {object} errors.HTTPErrorResponse "GitHub unavailable"
// @Router /repositories/{id}/commits [get]
func (h *Handler) listRepositoryCommits(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	perPage, err := queryInt(r, "per_page", defaultCommitsPerPage)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	repo, err := h.repositories.Get(r.Context(), ownerID, id)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	history, err := h.repositories.CommitHistory(r.Context(), *repo, r.URL.Query().Get("branch"), page, perPage)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// deleteRepository godoc
// @Summary Remove a repository
// @Description Deletes the repository with all of its commits and assessments
// @Tags Repository
// @Param X-User-ID header int true "Caller id"
// @Param id path int true "Repository id"
// @Success 204
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Router /repositories/{id} [delete]
func (h *Handler) deleteRepository(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	if err := h.repositories.Remove(r.Context(), ownerID, id); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// syncRepository godoc
// @Summary Sync a repository
// @Description Fetches recent commits from GitHub and scores every commit without an assessment
// @Tags Repository
// @Produce json
// @Param X-User-ID header int true "Caller id"
// @Param id path int true "Repository id"
// @Param branch query string false "Branch, defaults to the repository default branch"
// @Param limit query int false "Maximum commits to fetch"
// @Success 200 {object} service.SyncResult
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown repository"
// @Failure 409 {object} errors.HTTPErrorResponse "Sync disabled"
// @Failure 503 {object} errors.HTTPErrorResponse "GitHub rate limited"
// @Router /repositories/{id}/sync [post]
func (h *Handler) syncRepository(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	limit, err := queryInt(r, "limit", h.fetchLimit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	if limit < 1 {
		errors.WriteHTTPError(w, errors.Validation("INVALID_LIMIT", "Invalid limit", "limit must be at least 1", nil))
		return
	}

	repo, err := h.repositories.Get(r.Context(), ownerID, id)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	result, err := h.repositories.SyncRepository(r.Context(), *repo, r.URL.Query().Get("branch"), limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Manual sync of %s: %d fetched", repo.FullName, result.Fetched)
	writeJSON(w, http.StatusOK, result)
}
