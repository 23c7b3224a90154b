package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/errors"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUnavailable      = "UNAVAILABLE"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeEmptyPool        = "EMPTY_POOL"
	ErrCodeNoCategory       = "NO_CATEGORY_SELECTED"
	ErrCodeUnknownCategory  = "UNKNOWN_CATEGORY"
	ErrCodeCooldown         = "COOLDOWN"
	ErrCodeRelocationFailed = "RELOCATION_FAILED"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error with custom message and code
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// InternalError creates a 500 error, logs the underlying error
func InternalError(err error) *APIError {
	log.Printf("Internal error: %v", err)
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
}

// ToAPIError converts draw and service errors to API errors
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case stderrors.Is(err, draw.ErrEmptyPool):
		return NewAPIError(http.StatusConflict, ErrCodeEmptyPool, err.Error())
	case stderrors.Is(err, draw.ErrNoCategorySelected):
		return NewAPIError(http.StatusBadRequest, ErrCodeNoCategory, err.Error())
	case stderrors.Is(err, draw.ErrUnknownCategory):
		return NewAPIError(http.StatusBadRequest, ErrCodeUnknownCategory, err.Error())
	case stderrors.Is(err, draw.ErrCooldown):
		return NewAPIError(http.StatusTooManyRequests, ErrCodeCooldown, err.Error())
	}

	var relErr *draw.RelocationError
	if stderrors.As(err, &relErr) {
		return NewAPIError(http.StatusInternalServerError, ErrCodeRelocationFailed, "The winner was drawn but could not be moved: "+relErr.Err.Error())
	}

	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case errors.ErrNotFound:
			return NotFound(appErr.Message)
		case errors.ErrValidation, errors.ErrInvalidInput:
			return NewAPIError(http.StatusBadRequest, ErrCodeValidation, appErr.Message)
		case errors.ErrConflict:
			return NewAPIError(http.StatusConflict, ErrCodeConflict, appErr.Message)
		case errors.ErrUnavailable:
			return NewAPIError(http.StatusServiceUnavailable, ErrCodeUnavailable, appErr.Message)
		}
	}

	return InternalError(err)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

func respondError(w http.ResponseWriter, err error) {
	apiErr := ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

func respondImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, BadRequest("Invalid " + name + " parameter")
	}
	return v, nil
}
