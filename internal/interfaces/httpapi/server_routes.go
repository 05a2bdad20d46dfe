package httpapi

import "net/http"

func handle(mux *http.ServeMux, pattern string, handler http.Handler) {
	mux.Handle(pattern, labelRoute(pattern, handler))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	handle(mux, "GET /healthz", http.HandlerFunc(handler.Healthz))
	if metricsHandler != nil {
		handle(mux, "GET /metrics", metricsHandler)
	}
}

func registerFootballRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /api/football/live-scores", http.HandlerFunc(handler.FootballLiveScores))
	handle(mux, "GET /api/football/upcoming-fixtures", http.HandlerFunc(handler.FootballUpcomingFixtures))
	handle(mux, "GET /api/football/todays-fixtures", http.HandlerFunc(handler.FootballTodaysFixtures))
}

func registerOddsRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /api/odds", http.HandlerFunc(handler.Odds))
	handle(mux, "GET /api/odds/sports", http.HandlerFunc(handler.OddsSports))
}

func registerCricketRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /api/cricket/fixtures", http.HandlerFunc(handler.CricketFixtures))
}

// Retired paths answer 410 for every method.
func registerRetiredRoutes(mux *http.ServeMux, handler *Handler) {
	for _, route := range handler.retiredRoutes {
		handle(mux, route.Path, handler.Retired(route))
	}
}
