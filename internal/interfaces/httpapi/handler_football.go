package httpapi

import "net/http"

func (h *Handler) FootballLiveScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FootballLiveScores")
	defer span.End()

	req, err := parseLiveScoresRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.footballService.LiveScores(ctx, req.LeagueIDs, req.FirstPageOnly)
	if err != nil {
		h.fail(ctx, w, "football live scores", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) FootballUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FootballUpcomingFixtures")
	defer span.End()

	items, err := h.footballService.UpcomingFixtures(ctx)
	if err != nil {
		h.fail(ctx, w, "football upcoming fixtures", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) FootballTodaysFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FootballTodaysFixtures")
	defer span.End()

	items, err := h.footballService.TodaysFixtures(ctx)
	if err != nil {
		h.fail(ctx, w, "football todays fixtures", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
