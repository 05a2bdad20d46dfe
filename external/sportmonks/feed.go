package sportmonks

import (
	"context"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
)

// The methods below return normalized fixtures and satisfy usecase.FootballFeed and
// usecase.CricketFeed.

func (c *Client) LiveFixtures(ctx context.Context, leagueIDs []int64, firstPageOnly bool) ([]fixture.Processed, error) {
	items, err := c.FetchLiveFixtures(ctx, leagueIDs, firstPageOnly)
	if err != nil {
		return nil, err
	}
	return ProcessV3FootballFixtures(items), nil
}

func (c *Client) FixturesByDate(ctx context.Context, date time.Time) ([]fixture.Processed, error) {
	items, err := c.FetchFixturesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return ProcessV3FootballFixtures(items), nil
}

func (c *Client) FixturesBetween(ctx context.Context, from, to time.Time) ([]fixture.Processed, error) {
	items, err := c.FetchFixturesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ProcessV3FootballFixtures(items), nil
}

func (c *Client) CricketFixtures(ctx context.Context, from, to time.Time) ([]fixture.Processed, error) {
	items, err := c.FetchCricketFixtures(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ProcessCricketFixtures(items), nil
}
