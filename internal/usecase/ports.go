package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
)

// FootballFeed returns normalized football fixtures from the sport data provider.
type FootballFeed interface {
	LiveFixtures(ctx context.Context, leagueIDs []int64, firstPageOnly bool) ([]fixture.Processed, error)
	FixturesByDate(ctx context.Context, date time.Time) ([]fixture.Processed, error)
	FixturesBetween(ctx context.Context, from, to time.Time) ([]fixture.Processed, error)
}

type CricketFeed interface {
	CricketFixtures(ctx context.Context, from, to time.Time) ([]fixture.Processed, error)
}

type OddsProvider interface {
	FetchOdds(ctx context.Context, query odds.Query) ([]odds.Event, odds.Quota, error)
	FetchSports(ctx context.Context) ([]odds.Sport, odds.Quota, error)
}

// CacheObserver counts cache lookups by result (hit, miss, error).
type CacheObserver interface {
	ObserveCacheLookup(result string)
}
