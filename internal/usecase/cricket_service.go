package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

const (
	defaultCricketWindowDays = 7
	maxCricketWindowDays     = 31
)

// CricketService serves the legacy v2 cricket fixtures list.
type CricketService struct {
	feed  CricketFeed
	cache responseCache
	now   func() time.Time
}

func NewCricketService(feed CricketFeed, store cache.Store, observer CacheObserver, logger *logging.Logger) *CricketService {
	return &CricketService{
		feed:  feed,
		cache: newResponseCache(store, observer, logger),
		now:   time.Now,
	}
}

// Fixtures returns cricket fixtures between from and to. Zero values default to today and
// today plus seven days.
func (s *CricketService) Fixtures(ctx context.Context, from, to time.Time) ([]fixture.Processed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CricketService.Fixtures")
	defer span.End()

	if from.IsZero() {
		from = startOfDay(s.now())
	}
	from = startOfDay(from)
	if to.IsZero() {
		to = from.AddDate(0, 0, defaultCricketWindowDays)
	}
	to = startOfDay(to)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if to.Sub(from) > maxCricketWindowDays*24*time.Hour {
		return nil, fmt.Errorf("%w: date range must not exceed %d days", ErrInvalidInput, maxCricketWindowDays)
	}

	key := "cricket:fixtures:" + from.Format(time.DateOnly) + ":" + to.Format(time.DateOnly)
	return loadCached(ctx, s.cache, key, func(ctx context.Context) ([]fixture.Processed, error) {
		items, err := s.feed.CricketFixtures(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("cricket fixtures: %w", err)
		}
		items = nonNil(items)
		sortByStart(items)
		return items, nil
	})
}
