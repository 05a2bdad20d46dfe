package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
)

func (h *Handler) Odds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Odds")
	defer span.End()

	req := parseOddsRequest(r.URL.Query())
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsService.Odds(ctx, odds.Query{
		SportKey:   req.SportKey,
		Regions:    req.Regions,
		Markets:    req.Markets,
		OddsFormat: req.OddsFormat,
	})
	if err != nil {
		h.fail(ctx, w, "odds", err)
		return
	}

	writeSuccessWithQuota(ctx, w, result.Events, result.Quota)
}

func (h *Handler) OddsSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OddsSports")
	defer span.End()

	result, err := h.oddsService.Sports(ctx)
	if err != nil {
		h.fail(ctx, w, "odds sports", err)
		return
	}

	writeSuccessWithQuota(ctx, w, result.Sports, result.Quota)
}
