package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// WriteError maps application errors to HTTP responses. Infrastructure
// failures are logged at error level and their text is not exposed.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	apiErr := &APIError{
		Code:    application.ToErrorCode(err),
		Message: err.Error(),
		Details: errorDetails(err),
	}

	switch application.CategorizeError(err) {
	case application.CategoryInfrastructure:
		logger.Error("request failed", "code", apiErr.Code, "status", statusCode, "error", err)
		if statusCode == http.StatusInternalServerError {
			apiErr.Message = "An internal error occurred"
		}
	default:
		logger.Debug("request rejected", "code", apiErr.Code, "status", statusCode, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: apiErr})
}

func errorDetails(err error) map[string]string {
	var selErr *domain.SelectionError
	if !errors.As(err, &selErr) {
		return nil
	}
	details := map[string]string{"reason": selErr.Reason}
	if selErr.Group != "" {
		details["group"] = selErr.Group
	}
	if selErr.Limit > 0 {
		details["limit"] = strconv.Itoa(selErr.Limit)
	}
	if selErr.Line >= 0 {
		details["line"] = strconv.Itoa(selErr.Line)
	}
	return details
}
