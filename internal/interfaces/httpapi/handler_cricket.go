package httpapi

import "net/http"

func (h *Handler) CricketFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CricketFixtures")
	defer span.End()

	req, err := parseCricketFixturesRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.cricketService.Fixtures(ctx, req.From, req.To)
	if err != nil {
		h.fail(ctx, w, "cricket fixtures", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
