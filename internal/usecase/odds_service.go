package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

var sportKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type OddsService struct {
	provider OddsProvider
	cache    responseCache
}

func NewOddsService(provider OddsProvider, store cache.Store, observer CacheObserver, logger *logging.Logger) *OddsService {
	return &OddsService{
		provider: provider,
		cache:    newResponseCache(store, observer, logger),
	}
}

func (s *OddsService) Odds(ctx context.Context, query odds.Query) (odds.EventsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.Odds")
	defer span.End()

	query = query.WithDefaults()
	if query.SportKey == "" {
		return odds.EventsResult{}, fmt.Errorf("%w: sportKey is required", ErrInvalidInput)
	}
	if !sportKeyPattern.MatchString(query.SportKey) {
		return odds.EventsResult{}, fmt.Errorf("%w: sportKey %q is malformed", ErrInvalidInput, query.SportKey)
	}
	switch strings.ToLower(query.OddsFormat) {
	case odds.FormatDecimal, odds.FormatAmerican:
		query.OddsFormat = strings.ToLower(query.OddsFormat)
	default:
		return odds.EventsResult{}, fmt.Errorf("%w: oddsFormat must be decimal or american", ErrInvalidInput)
	}

	return loadCached(ctx, s.cache, query.CacheKey(), func(ctx context.Context) (odds.EventsResult, error) {
		events, quota, err := s.provider.FetchOdds(ctx, query)
		if err != nil {
			return odds.EventsResult{}, fmt.Errorf("odds: %w", err)
		}
		return odds.EventsResult{Events: events, Quota: quota}, nil
	})
}

func (s *OddsService) Sports(ctx context.Context) (odds.SportsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.Sports")
	defer span.End()

	return loadCached(ctx, s.cache, "odds:sports", func(ctx context.Context) (odds.SportsResult, error) {
		sports, quota, err := s.provider.FetchSports(ctx)
		if err != nil {
			return odds.SportsResult{}, fmt.Errorf("sports: %w", err)
		}
		return odds.SportsResult{Sports: sports, Quota: quota}, nil
	})
}
