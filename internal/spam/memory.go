package spam

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu         sync.Mutex
	reports    map[string]struct{} // reporter|phone
	aggregates map[string]Aggregate
}

// NewMemoryStore creates a concurrency-safe in-memory spam store useful for
// unit tests. Both maps mutate under one lock, mirroring the single
// transaction the Postgres store uses.
func NewMemoryStore() Store {
	return &memoryStore{
		reports:    make(map[string]struct{}),
		aggregates: make(map[string]Aggregate),
	}
}

func (s *memoryStore) Mark(_ context.Context, reporterID, targetPhone string) (MarkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reporterID + "|" + targetPhone
	if _, exists := s.reports[key]; exists {
		return MarkResult{Created: false, ReportCount: s.aggregates[targetPhone].ReportCount}, nil
	}

	s.reports[key] = struct{}{}
	agg := s.aggregates[targetPhone]
	agg.TargetPhone = targetPhone
	agg.ReportCount++
	agg.LastReportedAt = time.Now().UTC()
	s.aggregates[targetPhone] = agg

	return MarkResult{Created: true, ReportCount: agg.ReportCount}, nil
}

func (s *memoryStore) Count(_ context.Context, phone string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregates[phone].ReportCount, nil
}
