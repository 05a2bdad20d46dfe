package odds

import "strings"

const (
	FormatDecimal  = "decimal"
	FormatAmerican = "american"

	DefaultRegions = "uk"
	DefaultMarkets = "h2h"
)

// Query selects one sport's odds from The Odds API.
type Query struct {
	SportKey   string
	Regions    string
	Markets    string
	OddsFormat string
}

// WithDefaults fills the optional fields with uk / h2h / decimal.
func (q Query) WithDefaults() Query {
	q.SportKey = strings.TrimSpace(q.SportKey)
	if strings.TrimSpace(q.Regions) == "" {
		q.Regions = DefaultRegions
	}
	if strings.TrimSpace(q.Markets) == "" {
		q.Markets = DefaultMarkets
	}
	if strings.TrimSpace(q.OddsFormat) == "" {
		q.OddsFormat = FormatDecimal
	}
	return q
}

// CacheKey is stable for equal queries after defaults are applied.
func (q Query) CacheKey() string {
	q = q.WithDefaults()
	return "odds:" + q.SportKey + ":" + q.Regions + ":" + q.Markets + ":" + q.OddsFormat
}

// Event mirrors The Odds API v4 event shape so the body can be forwarded unchanged.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Point       *float64 `json:"point,omitempty"`
	Description string   `json:"description,omitempty"`
}

type Sport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

// Quota is the request budget reported by the x-requests-* response headers.
type Quota struct {
	Remaining *int `json:"remaining,omitempty"`
	Used      *int `json:"used,omitempty"`
	Last      *int `json:"last,omitempty"`
}

type EventsResult struct {
	Events []Event `json:"data"`
	Quota  Quota   `json:"quota"`
}

type SportsResult struct {
	Sports []Sport `json:"data"`
	Quota  Quota   `json:"quota"`
}
