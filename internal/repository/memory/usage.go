package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
)

type UsageStore struct {
	mu       sync.Mutex
	counters map[string]*model.Usage
}

func NewUsageStore() *UsageStore {
	return &UsageStore{counters: make(map[string]*model.Usage)}
}

var _ repository.UsageRepository = (*UsageStore)(nil)

func (s *UsageStore) Increment(_ context.Context, ownerID, period string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ownerID + "/" + period
	u, ok := s.counters[key]
	if !ok {
		u = &model.Usage{OwnerID: ownerID, Period: period}
		s.counters[key] = u
	}
	u.SentCount++
	u.UpdatedAt = time.Now()
	return nil
}

func (s *UsageStore) Get(_ context.Context, ownerID, period string) (*model.Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.counters[ownerID+"/"+period]; ok {
		cp := *u
		return &cp, nil
	}
	return &model.Usage{OwnerID: ownerID, Period: period}, nil
}
