package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	upcomingWindowDays    = 7
	defaultFanOutWorkers  = 4
	maxLiveScoreLeagueIDs = 25
)

type FootballServiceConfig struct {
	Cache         cache.Store
	CacheObserver CacheObserver
	Logger        *logging.Logger
	FanOutWorkers int
}

type FootballService struct {
	feed    FootballFeed
	cache   responseCache
	logger  *logging.Logger
	workers int
	now     func() time.Time
}

func NewFootballService(feed FootballFeed, cfg FootballServiceConfig) *FootballService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.FanOutWorkers
	if workers <= 0 {
		workers = defaultFanOutWorkers
	}

	return &FootballService{
		feed:    feed,
		cache:   newResponseCache(cfg.Cache, cfg.CacheObserver, logger),
		logger:  logger,
		workers: workers,
		now:     time.Now,
	}
}

// LiveScores returns in-play fixtures. With more than one league the per-league fetches run
// on a bounded worker pool; the call fails only when every league fails.
func (s *FootballService) LiveScores(ctx context.Context, leagueIDs []int64, firstPageOnly bool) ([]fixture.Processed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService.LiveScores")
	defer span.End()

	leagueIDs, err := normalizeLeagueIDs(leagueIDs)
	if err != nil {
		return nil, err
	}

	key := "football:live:" + joinIDs(leagueIDs) + ":" + strconv.FormatBool(firstPageOnly)
	return loadCached(ctx, s.cache, key, func(ctx context.Context) ([]fixture.Processed, error) {
		if len(leagueIDs) <= 1 {
			items, err := s.feed.LiveFixtures(ctx, leagueIDs, firstPageOnly)
			if err != nil {
				return nil, fmt.Errorf("live scores: %w", err)
			}
			return nonNil(items), nil
		}
		return s.liveScoresFanOut(ctx, leagueIDs, firstPageOnly)
	})
}

type leagueLiveResult struct {
	index int
	items []fixture.Processed
	err   error
}

func (s *FootballService) liveScoresFanOut(ctx context.Context, leagueIDs []int64, firstPageOnly bool) ([]fixture.Processed, error) {
	pool, err := ants.NewPool(min(s.workers, len(leagueIDs)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan leagueLiveResult, len(leagueIDs))
	var workers sync.WaitGroup
	for i, leagueID := range leagueIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			items, err := s.feed.LiveFixtures(ctx, []int64{leagueID}, firstPageOnly)
			results <- leagueLiveResult{index: i, items: items, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit live scores task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	ordered := make([][]fixture.Processed, len(leagueIDs))
	var firstErr error
	failed := 0
	for row := range results {
		if row.err != nil {
			failed++
			if firstErr == nil {
				firstErr = row.err
			}
			s.logger.WarnContext(ctx, "live scores fetch failed for league",
				"league_id", leagueIDs[row.index],
				"error", row.err,
			)
			continue
		}
		ordered[row.index] = row.items
	}
	if failed == len(leagueIDs) {
		return nil, fmt.Errorf("live scores: %w", firstErr)
	}

	return mergeByID(ordered...), nil
}

// UpcomingFixtures returns fixtures from today through the next seven days that have not
// kicked off, ordered by start time.
func (s *FootballService) UpcomingFixtures(ctx context.Context) ([]fixture.Processed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService.UpcomingFixtures")
	defer span.End()

	from := startOfDay(s.now())
	to := from.AddDate(0, 0, upcomingWindowDays)

	key := "football:upcoming:" + from.Format(time.DateOnly)
	return loadCached(ctx, s.cache, key, func(ctx context.Context) ([]fixture.Processed, error) {
		items, err := s.feed.FixturesBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("upcoming fixtures: %w", err)
		}

		upcoming := make([]fixture.Processed, 0, len(items))
		for _, item := range items {
			if item.IsLive || item.IsFinished {
				continue
			}
			upcoming = append(upcoming, item)
		}
		sortByStart(upcoming)
		return upcoming, nil
	})
}

// TodaysFixtures merges today's schedule with the in-play list. Both fetches run
// concurrently; live entries replace scheduled ones with the same id. It fails only when
// both fetches fail.
func (s *FootballService) TodaysFixtures(ctx context.Context) ([]fixture.Processed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService.TodaysFixtures")
	defer span.End()

	today := startOfDay(s.now())
	key := "football:today:" + today.Format(time.DateOnly)
	return loadCached(ctx, s.cache, key, func(ctx context.Context) ([]fixture.Processed, error) {
		var (
			scheduled, live       []fixture.Processed
			scheduledErr, liveErr error
			wg                    conc.WaitGroup
		)
		wg.Go(func() {
			scheduled, scheduledErr = s.feed.FixturesByDate(ctx, today)
		})
		wg.Go(func() {
			live, liveErr = s.feed.LiveFixtures(ctx, nil, false)
		})
		wg.Wait()

		if scheduledErr != nil && liveErr != nil {
			return nil, fmt.Errorf("todays fixtures: %w", errors.Join(scheduledErr, liveErr))
		}
		if scheduledErr != nil {
			s.logger.WarnContext(ctx, "todays fixtures: schedule fetch failed, serving live only", "error", scheduledErr)
		}
		if liveErr != nil {
			s.logger.WarnContext(ctx, "todays fixtures: live fetch failed, serving schedule only", "error", liveErr)
		}

		merged := overrideByID(scheduled, live)
		sortByStart(merged)
		return merged, nil
	})
}

func normalizeLeagueIDs(leagueIDs []int64) ([]int64, error) {
	if len(leagueIDs) > maxLiveScoreLeagueIDs {
		return nil, fmt.Errorf("%w: at most %d league ids are allowed", ErrInvalidInput, maxLiveScoreLeagueIDs)
	}
	seen := make(map[int64]struct{}, len(leagueIDs))
	out := make([]int64, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: league id must be a positive integer", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// mergeByID concatenates the groups, keeping the first fixture seen for each id.
func mergeByID(groups ...[]fixture.Processed) []fixture.Processed {
	seen := make(map[int64]struct{})
	out := make([]fixture.Processed, 0)
	for _, group := range groups {
		for _, item := range group {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// overrideByID returns base with any entry replaced by the override sharing its id.
// Overrides with unknown ids are appended.
func overrideByID(base, overrides []fixture.Processed) []fixture.Processed {
	out := mergeByID(base)
	index := make(map[int64]int, len(out))
	for i, item := range out {
		index[item.ID] = i
	}
	for _, item := range overrides {
		if i, ok := index[item.ID]; ok {
			out[i] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func sortByStart(items []fixture.Processed) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].StartingAt != items[j].StartingAt {
			return items[i].StartingAt < items[j].StartingAt
		}
		return items[i].ID < items[j].ID
	})
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func nonNil(items []fixture.Processed) []fixture.Processed {
	if items == nil {
		return []fixture.Processed{}
	}
	return items
}
