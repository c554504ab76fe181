package store

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// MemoryStore keeps a thread-safe copy of club-season records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	seasons map[string][]clubs.ClubSeason
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons: make(map[string][]clubs.ClubSeason),
	}
}

// ReplaceSeason swaps the stored records for season. An empty rows slice
// removes the season.
func (s *MemoryStore) ReplaceSeason(ctx context.Context, season string, rows []clubs.ClubSeason) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := make([]clubs.ClubSeason, len(rows))
	copy(copied, rows)
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].Club < copied[j].Club })

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(copied) == 0 {
		delete(s.seasons, season)
		return nil
	}
	s.seasons[season] = copied
	return nil
}

// ListSeasons returns the stored seasons, sorted.
func (s *MemoryStore) ListSeasons(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, 0, len(s.seasons))
	for season := range s.seasons {
		result = append(result, season)
	}
	sort.Strings(result)
	return result, nil
}

// ClubSeasons returns a copy of the season's records.
func (s *MemoryStore) ClubSeasons(ctx context.Context, season string) ([]clubs.ClubSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.seasons[season]
	result := make([]clubs.ClubSeason, len(rows))
	copy(result, rows)
	return result, nil
}
