package sportmonks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FixtureInclude is the include set every football fetch asks for.
const FixtureInclude = "participants;scores;state;league.country;venue;comments;events.type;periods;odds;referees.referee"

const dateLayout = time.DateOnly

// FetchLiveFixtures returns in-play fixtures, optionally filtered to leagueIDs.
func (c *Client) FetchLiveFixtures(ctx context.Context, leagueIDs []int64, firstPageOnly bool) ([]Fixture, error) {
	query := footballQuery()
	if filter := leagueFilter(leagueIDs); filter != "" {
		query.Set("filters", filter)
	}

	items, err := collectPages[Fixture](ctx, c, c.football, "livescores/inplay", "/livescores/inplay", query, pageOptions{firstPageOnly: firstPageOnly})
	if err != nil {
		return nil, fmt.Errorf("fetch live fixtures: %w", err)
	}
	return items, nil
}

// FetchFixturesByDate returns every fixture kicking off on date (UTC calendar day).
func (c *Client) FetchFixturesByDate(ctx context.Context, date time.Time) ([]Fixture, error) {
	path := "/fixtures/date/" + date.UTC().Format(dateLayout)
	items, err := collectPages[Fixture](ctx, c, c.football, "fixtures/date", path, footballQuery(), pageOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures by date=%s: %w", date.UTC().Format(dateLayout), err)
	}
	return items, nil
}

// FetchFixturesBetween returns fixtures in the inclusive [from, to] day range.
func (c *Client) FetchFixturesBetween(ctx context.Context, from, to time.Time) ([]Fixture, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("fetch fixtures between: end %s before start %s", to.Format(dateLayout), from.Format(dateLayout))
	}

	path := "/fixtures/between/" + from.UTC().Format(dateLayout) + "/" + to.UTC().Format(dateLayout)
	items, err := collectPages[Fixture](ctx, c, c.football, "fixtures/between", path, footballQuery(), pageOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures between %s and %s: %w", from.UTC().Format(dateLayout), to.UTC().Format(dateLayout), err)
	}
	return items, nil
}

func footballQuery() url.Values {
	query := url.Values{}
	query.Set("include", FixtureInclude)
	return query
}

func leagueFilter(leagueIDs []int64) string {
	if len(leagueIDs) == 0 {
		return ""
	}
	values := make([]string, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		if id > 0 {
			values = append(values, strconv.FormatInt(id, 10))
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "fixtureLeagues:" + strings.Join(values, ",")
}
