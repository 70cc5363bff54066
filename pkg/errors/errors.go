package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * Kind classifies an error for callers and for the HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUpstream
	KindUnauthorized
)

func (k Kind) String() string {
	return [...]string{"Internal", "Validation", "NotFound", "Conflict", "UpstreamUnavailable", "Unauthorized"}[k]
}

// * UpstreamReason tells apart the ways the version-control API can fail.
type UpstreamReason string

const (
	UpstreamNotFound    UpstreamReason = "not_found"
	UpstreamRateLimited UpstreamReason = "rate_limited"
	UpstreamTransient   UpstreamReason = "transient"
)

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	Operation   string
	Kind        Kind
	Reason      UpstreamReason
	RootCause   error
	Level       ErrorLevel
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Operation != "" {
		fmt.Fprintf(&b, " during %s", e.Operation)
	}

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

// * WithOperation records which operation failed and returns the same error.
func (e *ApplicationError) WithOperation(op string) *ApplicationError {
	e.Operation = op
	return e
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return newError(KindInternal, ref, title, detail, cause, level)
}

func Wrap(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return newError(KindInternal, ref, title, detail, cause, level)
}

// * Validation marks malformed input, e.g. negative feature values.
func Validation(ref, title, detail string, cause error) *ApplicationError {
	return newError(KindValidation, ref, title, detail, cause, LevelInfo)
}

// * NotFound marks an unknown commit, repository or assessment reference.
func NotFound(ref, title, detail string, cause error) *ApplicationError {
	return newError(KindNotFound, ref, title, detail, cause, LevelInfo)
}

// * Conflict marks a write race the store could not resolve after retrying.
func Conflict(ref, title, detail string, cause error) *ApplicationError {
	return newError(KindConflict, ref, title, detail, cause, LevelWarning)
}

// * Unauthorized marks a request without a usable caller identity.
func Unauthorized(ref, title, detail string) *ApplicationError {
	return newError(KindUnauthorized, ref, title, detail, nil, LevelInfo)
}

// * Upstream marks a failure of the ingestion adapter.
func Upstream(reason UpstreamReason, title, detail string, cause error) *ApplicationError {
	e := newError(KindUpstream, "UPSTREAM_UNAVAILABLE", title, detail, cause, LevelError)
	e.Reason = reason
	return e
}

func newError(kind Kind, ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		Kind:        kind,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(4),
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// * KindOf returns the kind of the first ApplicationError in the chain.
func KindOf(err error) Kind {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// * ReasonOf returns the upstream reason of err, or "" when it is not an upstream failure.
func ReasonOf(err error) UpstreamReason {
	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Kind == KindUpstream {
		return appErr.Reason
	}
	return ""
}

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

type HTTPErrorResponse struct {
	Status     int       `json:"status"`
	ErrorRef   string    `json:"error_reference,omitempty"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
	Operation  string    `json:"operation,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// * StatusFor maps an error to the HTTP status WriteHTTPError would use.
func StatusFor(err error) int {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUpstream:
		if appErr.Reason == UpstreamRateLimited {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}

	switch appErr.Level {
	case LevelWarning:
		return http.StatusConflict
	case LevelInfo:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    StatusFor(err),
		Title:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail
		resp.Operation = appErr.Operation
		resp.Reason = string(appErr.Reason)

		switch {
		case appErr.Kind == KindUpstream && appErr.Reason == UpstreamRateLimited:
			resp.Resolution = "The upstream API is rate limited, please retry later"
		case appErr.Kind == KindConflict:
			resp.Resolution = "Please review your request and try again"
		case resp.Status >= http.StatusInternalServerError:
			resp.Resolution = "Please contact support with the error reference"
		}
	} else {
		resp.Detail = err.Error()
	}

	if resp.Status >= http.StatusInternalServerError {
		logger.Error("%v", err)
	} else {
		logger.Debug("%v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
