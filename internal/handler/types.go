package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KOFI-GYIMAH/commit-risk/internal/analytics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// * Report json field names so errors match what the client sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type PredictionRequest struct {
	SHA                string  `json:"sha" validate:"required,hexadecimal,max=64"`
	RepositoryFullName string  `json:"repository_full_name" validate:"required,max=255"`
	CommitMessage      *string `json:"commit_message,omitempty"`
	AuthorEmail        *string `json:"author_email,omitempty" validate:"omitempty,max=255"`
	LinesAdded         *int    `json:"lines_added,omitempty" validate:"omitempty,gte=0"`
	LinesDeleted       *int    `json:"lines_deleted,omitempty" validate:"omitempty,gte=0"`
	FilesChanged       *int    `json:"files_changed,omitempty" validate:"omitempty,gte=0"`
	ModelVersion       string  `json:"model_version,omitempty"`
}

// * normalizer is implemented by request bodies that clean up input before validation.
type normalizer interface {
	normalize()
}

func (r *PredictionRequest) normalize() {
	r.SHA = strings.TrimSpace(r.SHA)
	r.RepositoryFullName = strings.TrimSpace(r.RepositoryFullName)
}

func (r PredictionRequest) toAnalyzeRequest() service.AnalyzeRequest {
	return service.AnalyzeRequest{
		SHA:                r.SHA,
		RepositoryFullName: r.RepositoryFullName,
		CommitMessage:      r.CommitMessage,
		AuthorEmail:        r.AuthorEmail,
		LinesAdded:         r.LinesAdded,
		LinesDeleted:       r.LinesDeleted,
		FilesChanged:       r.FilesChanged,
		ModelVersion:       r.ModelVersion,
	}
}

type AddRepositoryRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
}

func (r *AddRepositoryRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
}

type PredictionPage struct {
	Items []models.RiskAssessment `json:"items"`
	Total int                     `json:"total"`
	Skip  int                     `json:"skip"`
	Limit int                     `json:"limit"`
}

type ActivityResponse struct {
	Items []analytics.ActivityItem `json:"items"`
	Count int                      `json:"count"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
