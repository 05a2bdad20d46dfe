package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sportsbet-api/internal/usecase"
)

// Retired answers 410 for a withdrawn endpoint and points at its replacement.
func (h *Handler) Retired(route usecase.RetiredRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.Retired")
		defer span.End()

		h.logger.InfoContext(ctx, "retired endpoint called", "path", route.Path, "replacement", route.Replacement)
		writeJSON(ctx, w, http.StatusGone, errorEnvelope{
			Error:       route.Message,
			Reason:      "gone",
			Replacement: route.Replacement,
			RetiredOn:   route.RetiredOn,
		})
	}
}
