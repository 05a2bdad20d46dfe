package sportmonks

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const cricketInclude = "localteam,visitorteam,league,venue,runs"

// FetchCricketFixtures returns v2 cricket fixtures starting inside [from, to].
func (c *Client) FetchCricketFixtures(ctx context.Context, from, to time.Time) ([]CricketFixture, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("fetch cricket fixtures: end %s before start %s", to.Format(dateLayout), from.Format(dateLayout))
	}

	query := url.Values{}
	query.Set("include", cricketInclude)
	query.Set("filter[starts_between]", from.UTC().Format(dateLayout)+","+to.UTC().Format(dateLayout))
	query.Set("sort", "starting_at")

	items, err := collectPages[CricketFixture](ctx, c, c.cricket, "cricket/fixtures", "/fixtures", query, pageOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch cricket fixtures: %w", err)
	}
	return items, nil
}
