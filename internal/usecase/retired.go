package usecase

import "strings"

// RetiredRoute is an endpoint that was permanently withdrawn and now answers 410.
type RetiredRoute struct {
	Path        string
	Replacement string
	RetiredOn   string
	Message     string
}

// RetiredRoutes lists the withdrawn endpoints. Replacement paths are made absolute against
// apiBaseURL when one is configured.
func RetiredRoutes(apiBaseURL string) []RetiredRoute {
	base := strings.TrimRight(strings.TrimSpace(apiBaseURL), "/")
	routes := []RetiredRoute{
		{
			Path:        "/api/football/fixtures",
			Replacement: "/api/football/upcoming-fixtures",
			RetiredOn:   "2024-06-01",
			Message:     "This endpoint has been retired. Use the upcoming or today's fixtures endpoints instead.",
		},
		{
			Path:        "/api/cricket/live-scores",
			Replacement: "/api/cricket/fixtures",
			RetiredOn:   "2024-06-01",
			Message:     "Cricket live scores are no longer supported. Use the cricket fixtures endpoint instead.",
		},
		{
			Path:        "/api/sportmonks/fixtures",
			Replacement: "/api/football/todays-fixtures",
			RetiredOn:   "2024-06-01",
			Message:     "This endpoint has been retired. Use the football endpoints instead.",
		},
	}
	for i := range routes {
		routes[i].Replacement = base + routes[i].Replacement
	}
	return routes
}
