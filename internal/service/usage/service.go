// Package usage tracks per-owner monthly send counters. Increments are
// best-effort by contract: the dispatch cycle logs a failure and moves on,
// and a sent message is never reverted over accounting.
package usage

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
)

type Service struct {
	repo  repository.UsageRepository
	cache *gocache.Cache
	loc   *time.Location
	now   func() time.Time
}

// NewService builds the counter service. Periods roll over at midnight in
// loc, the same zone the delivery gate uses.
func NewService(repo repository.UsageRepository, loc *time.Location) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(30*time.Second, time.Minute),
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock overrides the wall clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) currentPeriod() string {
	return s.now().In(s.loc).Format("2006-01")
}

// Increment bumps the owner's counter for the current period and drops
// the cached read so dashboards see the new count promptly.
func (s *Service) Increment(ctx context.Context, ownerID string) error {
	period := s.currentPeriod()
	if err := s.repo.Increment(ctx, ownerID, period); err != nil {
		return fmt.Errorf("failed to increment usage for %s: %w", ownerID, err)
	}
	s.cache.Delete(cacheKey(ownerID, period))
	return nil
}

// Current returns the owner's counter for the current period, served from
// a short-lived cache.
func (s *Service) Current(ctx context.Context, ownerID string) (*model.Usage, error) {
	period := s.currentPeriod()
	key := cacheKey(ownerID, period)

	if v, ok := s.cache.Get(key); ok {
		return v.(*model.Usage), nil
	}

	u, err := s.repo.Get(ctx, ownerID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage for %s: %w", ownerID, err)
	}
	s.cache.Set(key, u, gocache.DefaultExpiration)
	return u, nil
}

func cacheKey(ownerID, period string) string {
	return ownerID + "/" + period
}
