package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
)

const internalErrorMessage = "internal server error"

type successEnvelope struct {
	Data  any         `json:"data"`
	Quota *odds.Quota `json:"quota,omitempty"`
}

type errorEnvelope struct {
	Error       string `json:"error"`
	Reason      string `json:"reason"`
	Replacement string `json:"replacement,omitempty"`
	RetiredOn   string `json:"retiredOn,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, successEnvelope{Data: data})
}

func writeSuccessWithQuota(ctx context.Context, w http.ResponseWriter, data any, quota odds.Quota) {
	writeJSON(ctx, w, http.StatusOK, successEnvelope{Data: data, Quota: &quota})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{
		Error:  mapped.Message,
		Reason: mapped.Reason,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope{
		Error:  internalErrorMessage,
		Reason: "internalError",
	})
}

// mapError picks the response status. Provider failures keep the upstream status when it is
// an error status.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var providerErr *usecase.ProviderError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Message:    publicMessage(err, usecase.ErrInvalidInput),
		}
	case errors.Is(err, usecase.ErrNotConfigured):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "notConfigured",
			Message:    publicMessage(err, usecase.ErrNotConfigured),
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Message:    publicMessage(err, usecase.ErrDependencyUnavailable),
		}
	case errors.As(err, &providerErr):
		status := providerErr.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}
		return mappedError{
			HTTPStatus: status,
			Reason:     "upstreamError",
			Message:    providerErr.Message,
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Message:    internalErrorMessage,
		}
	}
}

// publicMessage strips wrapping context and the sentinel prefix from "...: <sentinel>: detail".
func publicMessage(err error, sentinel error) string {
	text := err.Error()
	prefix := sentinel.Error() + ": "
	if idx := strings.LastIndex(text, prefix); idx >= 0 {
		if detail := strings.TrimSpace(text[idx+len(prefix):]); detail != "" {
			return detail
		}
	}
	return sentinel.Error()
}
