package errors

import (
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter maps classified errors to HTTP statuses for the preview server.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates an adapter; a nil logger means slog.Default().
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// HTTPErrorResponse is the JSON error payload.
type HTTPErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

// StatusCodeFor returns the status for err. Unknown errors map to 500.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	classified, ok := AsClassified(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch classified.Category() {
	case CategoryValidation, CategoryConfig:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryNetwork, CategoryGit:
		return http.StatusBadGateway
	case CategoryBuild, CategoryRender, CategoryDocument:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Response builds the payload for err and logs it at a level matching its severity.
func (a *HTTPErrorAdapter) Response(r *http.Request, err error) HTTPErrorResponse {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.ErrorContext(r.Context(), err.Error(), "path", r.URL.Path)
		return HTTPErrorResponse{Error: err.Error()}
	}
	a.logger.Log(r.Context(), levelFor(classified.Severity()), classified.Error(), "path", r.URL.Path)
	resp := HTTPErrorResponse{
		Error:     classified.Message(),
		Code:      string(classified.Category()),
		Retryable: classified.CanRetry(),
	}
	if len(classified.Context()) > 0 {
		resp.Details = map[string]any(classified.Context())
	}
	return resp
}
