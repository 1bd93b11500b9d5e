package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

type stubWorkerMatcher struct {
	workers []models.Worker
	skill   string
	limit   int
}

func (s *stubWorkerMatcher) FindActiveBySkill(_ context.Context, skill string, limit int) ([]models.Worker, error) {
	s.skill = skill
	s.limit = limit
	return s.workers, nil
}

func TestMatchOrdersByRatingWithoutCoordinates(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{
		workers: []models.Worker{
			buildWorker(2, "Plumber", 4.8, "Andheri West", nil, nil),
			buildWorker(1, "Plumber", 4.5, "Juhu", nil, nil),
			buildWorker(3, "Plumber", 4.2, "Dadar", nil, nil),
		},
	}, false)

	ranked, err := service.Match(context.Background(), MatchQuery{Skill: "Plumber"}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got := len(ranked); got != 3 {
		t.Fatalf("expected 3 workers, got %d", got)
	}
	for i, want := range []int64{2, 1, 3} {
		if ranked[i].ID != want {
			t.Fatalf("position %d: expected worker %d, got %d", i, want, ranked[i].ID)
		}
	}
}

func TestMatchOrdersByDistanceWhenRequesterHasCoordinates(t *testing.T) {
	// Offsets of roughly 2, 5 and 10 km north of the requester.
	service := NewMatchingService(&stubWorkerMatcher{
		workers: []models.Worker{
			buildWorkerAt(1, "Plumber", 4.5, 19.0760+0.045, 72.8777),
			buildWorkerAt(2, "Plumber", 4.8, 19.0760+0.018, 72.8777),
			buildWorkerAt(3, "Plumber", 4.2, 19.0760+0.090, 72.8777),
		},
	}, false)

	lat, lng := 19.0760, 72.8777
	ranked, err := service.Match(context.Background(), MatchQuery{
		Skill:        "Plumber",
		RequesterLat: &lat,
		RequesterLng: &lng,
	}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i, want := range []int64{2, 1, 3} {
		if ranked[i].ID != want {
			t.Fatalf("position %d: expected worker %d, got %d", i, want, ranked[i].ID)
		}
	}
	for i := range ranked {
		if ranked[i].DistanceKm == nil {
			t.Fatalf("worker %d has no computed distance", ranked[i].ID)
		}
	}
	if *ranked[0].DistanceKm >= *ranked[1].DistanceKm || *ranked[1].DistanceKm >= *ranked[2].DistanceKm {
		t.Fatalf("distances not ascending: %v %v %v", *ranked[0].DistanceKm, *ranked[1].DistanceKm, *ranked[2].DistanceKm)
	}
}

func TestMatchWorkersWithoutCoordinatesSortLast(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{
		workers: []models.Worker{
			buildWorker(1, "Plumber", 4.9, "Juhu", nil, nil),
			buildWorkerAt(2, "Plumber", 4.0, 19.10, 72.88),
		},
	}, false)

	lat, lng := 19.0760, 72.8777
	ranked, err := service.Match(context.Background(), MatchQuery{
		Skill:        "Plumber",
		RequesterLat: &lat,
		RequesterLng: &lng,
	}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if ranked[0].ID != 2 {
		t.Fatalf("expected located worker first, got %d", ranked[0].ID)
	}
	if ranked[1].ID != 1 || ranked[1].DistanceKm != nil {
		t.Fatalf("expected unlocated worker last with nil distance")
	}
}

func TestMatchBudgetFilter(t *testing.T) {
	daily800, daily450 := 800, 450
	hourly80 := 80
	service := NewMatchingService(&stubWorkerMatcher{
		workers: []models.Worker{
			buildWorker(1, "Plumber", 4.8, "Andheri", &daily800, nil),
			buildWorker(2, "Plumber", 4.5, "Andheri", &daily450, nil),
			buildWorker(3, "Plumber", 4.2, "Andheri", nil, &hourly80),
			buildWorker(4, "Plumber", 4.0, "Andheri", nil, nil),
		},
	}, false)

	budget := 500
	ranked, err := service.Match(context.Background(), MatchQuery{Skill: "Plumber", Budget: &budget}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	// 800 > 500, 80*8 = 640 > 500, no rates at all: only the 450/day worker fits.
	if len(ranked) != 1 || ranked[0].ID != 2 {
		t.Fatalf("expected only worker 2 to survive, got %v", rankedIDs(ranked))
	}
}

func TestMatchLocationFilterIsCaseInsensitiveSubstring(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{
		workers: []models.Worker{
			buildWorker(1, "Plumber", 4.8, "Andheri West", nil, nil),
			buildWorker(2, "Plumber", 4.5, "Juhu", nil, nil),
			buildWorker(3, "Plumber", 4.2, "andheri east", nil, nil),
		},
	}, false)

	ranked, err := service.Match(context.Background(), MatchQuery{Skill: "Plumber", Location: "Andheri"}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if ids := rankedIDs(ranked); len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected workers 1 and 3, got %v", ids)
	}
}

func TestMatchEmptyPoolIsNotAnError(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{}, false)

	ranked, err := service.Match(context.Background(), MatchQuery{Skill: "Carpenter"}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected empty result, got %d workers", len(ranked))
	}
}

func TestMatchFallbackReturnsSyntheticWorkers(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{}, true)

	ranked, err := service.Match(context.Background(), MatchQuery{Skill: "Carpenter", Location: "Pune"}, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected synthetic fallback workers")
	}
	for _, candidate := range ranked {
		if !candidate.Synthetic {
			t.Fatalf("worker %d not tagged synthetic", candidate.ID)
		}
		if candidate.ID >= 0 {
			t.Fatalf("synthetic worker has non-negative ID %d", candidate.ID)
		}
		if candidate.Skill != "Carpenter" {
			t.Fatalf("synthetic worker has skill %q", candidate.Skill)
		}
	}
}

func TestMatchRejectsInvalidQuery(t *testing.T) {
	service := NewMatchingService(&stubWorkerMatcher{}, false)

	if _, err := service.Match(context.Background(), MatchQuery{Skill: "   "}, 20); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for blank skill, got %v", err)
	}
	if _, err := service.Match(context.Background(), MatchQuery{Skill: "Plumber"}, 0); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for zero limit, got %v", err)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	daily := 600
	stub := &stubWorkerMatcher{
		workers: []models.Worker{
			buildWorkerAt(1, "Plumber", 4.5, 19.10, 72.88),
			buildWorker(2, "Plumber", 4.8, "Andheri West", &daily, nil),
			buildWorkerAt(3, "Plumber", 4.2, 19.20, 72.90),
		},
	}
	service := NewMatchingService(stub, false)

	lat, lng := 19.0760, 72.8777
	query := MatchQuery{Skill: "Plumber", RequesterLat: &lat, RequesterLng: &lng}

	first, err := service.Match(context.Background(), query, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	second, err := service.Match(context.Background(), query, 20)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	firstIDs, secondIDs := rankedIDs(first), rankedIDs(second)
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("result sizes differ: %v vs %v", firstIDs, secondIDs)
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("result order differs: %v vs %v", firstIDs, secondIDs)
		}
	}
}

func buildWorker(id int64, skill string, rating float64, location string, dailyRate, hourlyRate *int) models.Worker {
	return models.Worker{
		ID:           id,
		UserID:       id + 100,
		Name:         "Worker",
		Skill:        skill,
		Location:     location,
		DailyRate:    dailyRate,
		HourlyRate:   hourlyRate,
		Availability: "available",
		Rating:       rating,
		IsActive:     true,
	}
}

func buildWorkerAt(id int64, skill string, rating float64, lat, lng float64) models.Worker {
	worker := buildWorker(id, skill, rating, "Mumbai", nil, nil)
	worker.Latitude = &lat
	worker.Longitude = &lng
	return worker
}

func rankedIDs(ranked []models.RankedWorker) []int64 {
	ids := make([]int64, 0, len(ranked))
	for _, candidate := range ranked {
		ids = append(ids, candidate.ID)
	}
	return ids
}
