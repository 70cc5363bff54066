package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/KOFI-GYIMAH/commit-risk/internal/analytics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/middleware"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
)

type AnalysisService interface {
	Analyze(ctx context.Context, ownerID int64, req service.AnalyzeRequest) (*service.Prediction, error)
	Latest(ctx context.Context, ownerID int64, sha, modelVersion string) (*service.Prediction, error)
	List(ctx context.Context, ownerID int64, skip, limit int) ([]models.RiskAssessment, int, error)
	Models() service.ModelsInfo
}

type DashboardService interface {
	Stats(ctx context.Context, scope models.Scope) (*analytics.Stats, error)
	RiskDistribution(ctx context.Context, scope models.Scope) (*analytics.Distribution, error)
	RecentActivity(ctx context.Context, scope models.Scope, limit int) ([]analytics.ActivityItem, error)
	CommitsWithRisk(ctx context.Context, scope models.Scope, q analytics.ListQuery) (*service.CommitRiskPage, error)
}

type RepositoryService interface {
	Import(ctx context.Context, ownerID int64, fullName string) (*models.Repository, error)
	List(ctx context.Context, ownerID int64) ([]models.Repository, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Repository, error)
	Remove(ctx context.Context, ownerID, id int64) error
	SyncRepository(ctx context.Context, repo models.Repository, branch string, limit int) (*service.SyncResult, error)
	CommitHistory(ctx context.Context, repo models.Repository, branch string, page, perPage int) (*service.CommitHistory, error)
}

type Handler struct {
	analysis     AnalysisService
	dashboard    DashboardService
	repositories RepositoryService
	fetchLimit   int
}

func NewHandler(analysis AnalysisService, dashboard DashboardService, repositories RepositoryService, fetchLimit int) *Handler {
	return &Handler{
		analysis:     analysis,
		dashboard:    dashboard,
		repositories: repositories,
		fetchLimit:   fetchLimit,
	}
}

// * RegisterRoutes expects r to already carry the identity middleware.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/predictions", h.createPrediction).Methods(http.MethodPost)
	r.HandleFunc("/predictions", h.listPredictions).Methods(http.MethodGet)
	r.HandleFunc("/predictions/{sha}", h.getPrediction).Methods(http.MethodGet)
	r.HandleFunc("/models", h.listModels).Methods(http.MethodGet)

	r.HandleFunc("/dashboard/stats", h.getStats).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/risk-distribution", h.getRiskDistribution).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/recent-activity", h.getRecentActivity).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/commits-with-risk", h.getCommitsWithRisk).Methods(http.MethodGet)

	r.HandleFunc("/repositories", h.addRepository).Methods(http.MethodPost)
	r.HandleFunc("/repositories", h.listRepositories).Methods(http.MethodGet)
	r.HandleFunc("/repositories/{id:[0-9]+}", h.getRepository).Methods(http.MethodGet)
	r.HandleFunc("/repositories/{id:[0-9]+}", h.deleteRepository).Methods(http.MethodDelete)
	r.HandleFunc("/repositories/{id:[0-9]+}/commits", h.listRepositoryCommits).Methods(http.MethodGet)
	r.HandleFunc("/repositories/{id:[0-9]+}/sync", h.syncRepository).Methods(http.MethodPost)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// * callerID is only missing when a route was mounted without IdentityMiddleware.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		errors.WriteHTTPError(w, errors.Unauthorized("MISSING_USER_ID", "Missing caller identity", "The X-User-ID header is required"))
	}
	return id, ok
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(
			"INVALID_REQUEST_BODY",
			"Invalid request",
			fmt.Sprintf("Request body is not valid JSON: %v", err),
			err,
			errors.LevelInfo,
		)
	}

	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
			}
			return errors.Validation("INVALID_REQUEST", "Invalid request", strings.Join(problems, "; "), err)
		}
		return errors.Validation("INVALID_REQUEST", "Invalid request", err.Error(), err)
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Validation(
			"INVALID_QUERY_PARAMETER",
			"Invalid query parameter",
			fmt.Sprintf("%s must be an integer, got '%s'", key, raw),
			err,
		)
	}
	return v, nil
}

// * scopeFor builds the aggregation scope from the caller and an optional repo_id.
func scopeFor(r *http.Request, ownerID int64) (models.Scope, error) {
	scope := models.Scope{OwnerID: ownerID}

	raw := r.URL.Query().Get("repo_id")
	if raw == "" {
		return scope, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return scope, errors.Validation(
			"INVALID_QUERY_PARAMETER",
			"Invalid query parameter",
			fmt.Sprintf("repo_id must be a positive integer, got '%s'", raw),
			err,
		)
	}
	scope.RepositoryID = &id
	return scope, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation("INVALID_PATH_PARAMETER", "Invalid repository id", fmt.Sprintf("id must be a positive integer, got '%s'", raw), err)
	}
	return id, nil
}
