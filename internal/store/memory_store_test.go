package store

import (
	"context"
	"testing"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestMemoryStoreReplaceAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rows := []clubs.ClubSeason{
		{Season: "2013-14", Club: "Chelsea", WageBill: floatPtr(190)},
		{Season: "2013-14", Club: "Arsenal", WageBill: floatPtr(166)},
	}
	if err := s.ReplaceSeason(ctx, "2013-14", rows); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.ClubSeasons(ctx, "2013-14")
	if err != nil {
		t.Fatalf("club seasons: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(got))
	}
	if got[0].Club != "Arsenal" {
		t.Fatalf("expected clubs sorted by name, got %q first", got[0].Club)
	}
}

func TestMemoryStoreUnknownSeasonIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.ClubSeasons(context.Background(), "1999-00")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMemoryStoreReplaceDropsOldRows(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.ReplaceSeason(ctx, "2013-14", []clubs.ClubSeason{{Season: "2013-14", Club: "Old"}})
	_ = s.ReplaceSeason(ctx, "2013-14", []clubs.ClubSeason{{Season: "2013-14", Club: "New"}})

	got, _ := s.ClubSeasons(ctx, "2013-14")
	if len(got) != 1 || got[0].Club != "New" {
		t.Fatalf("expected replacement, got %#v", got)
	}

	_ = s.ReplaceSeason(ctx, "2013-14", nil)
	seasons, _ := s.ListSeasons(ctx)
	if len(seasons) != 0 {
		t.Fatalf("expected empty replace to remove season, got %v", seasons)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rows := []clubs.ClubSeason{{Season: "2013-14", Club: "Arsenal"}}
	_ = s.ReplaceSeason(ctx, "2013-14", rows)
	rows[0].Club = "mutated"

	got, _ := s.ClubSeasons(ctx, "2013-14")
	got[0].Club = "also mutated"

	again, _ := s.ClubSeasons(ctx, "2013-14")
	if again[0].Club != "Arsenal" {
		t.Fatalf("store leaked mutation: %q", again[0].Club)
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ReplaceSeason(ctx, "2013-14", nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestReplaceAllGroupsBySeason(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	n, err := ReplaceAll(ctx, s, []clubs.ClubSeason{
		{Season: "2014-15", Club: "Chelsea", Position: intPtr(1)},
		{Season: "2013-14", Club: "Arsenal"},
		{Season: "2014-15", Club: "Arsenal"},
	})
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 seasons, got %d", n)
	}
	seasons, _ := s.ListSeasons(ctx)
	if len(seasons) != 2 || seasons[0] != "2013-14" || seasons[1] != "2014-15" {
		t.Fatalf("unexpected seasons %v", seasons)
	}
	got, _ := s.ClubSeasons(ctx, "2014-15")
	if len(got) != 2 {
		t.Fatalf("expected 2 clubs in 2014-15, got %d", len(got))
	}
}
