package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/pkg/geo"
)

// hoursPerWorkDay converts an hourly rate into a comparable day figure for
// budget checks.
const hoursPerWorkDay = 8

type WorkerMatcher interface {
	FindActiveBySkill(ctx context.Context, skill string, limit int) ([]models.Worker, error)
}

// MatchQuery carries everything a search needs; there is no ambient request
// state, callers pass coordinates and filters explicitly.
type MatchQuery struct {
	Skill        string
	Location     string
	Budget       *int
	RequesterLat *float64
	RequesterLng *float64
}

type MatchingService struct {
	workerRepo     WorkerMatcher
	enableFallback bool
}

func NewMatchingService(workerRepo WorkerMatcher, enableFallback bool) *MatchingService {
	return &MatchingService{workerRepo: workerRepo, enableFallback: enableFallback}
}

// Match runs the full pipeline: fetch the top-rated candidate pool for the
// skill, rank it by distance from the requester, then filter by location and
// budget. Filters run strictly after ranking so the relative distance order
// of survivors never changes. An empty result is a valid answer, not an
// error.
func (s *MatchingService) Match(ctx context.Context, query MatchQuery, poolLimit int) ([]models.RankedWorker, error) {
	skill := strings.TrimSpace(query.Skill)
	if skill == "" || poolLimit <= 0 {
		return nil, ErrInvalidQuery
	}

	workers, err := s.workerRepo.FindActiveBySkill(ctx, skill, poolLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedWorker, 0, len(workers))
	for _, worker := range workers {
		ranked = append(ranked, models.RankedWorker{Worker: worker})
	}
	if len(ranked) == 0 && s.enableFallback {
		ranked = fallbackWorkers(skill, query.Location)
	}

	rankByDistance(ranked, query.RequesterLat, query.RequesterLng)
	ranked = filterByLocation(ranked, query.Location)
	ranked = filterByBudget(ranked, query.Budget)

	return ranked, nil
}

// rankByDistance sorts candidates by distance from the requester, closest
// first. Candidates missing coordinates on either side get no distance and
// sort last; the stable sort keeps the fetch order (rating) among equals.
func rankByDistance(ranked []models.RankedWorker, lat, lng *float64) {
	if lat == nil || lng == nil {
		return
	}
	for i := range ranked {
		if ranked[i].Latitude == nil || ranked[i].Longitude == nil {
			continue
		}
		distance := geo.HaversineKm(*lat, *lng, *ranked[i].Latitude, *ranked[i].Longitude)
		ranked[i].DistanceKm = &distance
		ranked[i].DistanceText = geo.FormatDistance(distance)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return distanceValue(ranked[i].DistanceKm) < distanceValue(ranked[j].DistanceKm)
	})
}

func filterByLocation(ranked []models.RankedWorker, location string) []models.RankedWorker {
	location = strings.TrimSpace(strings.ToLower(location))
	if location == "" {
		return ranked
	}
	filtered := make([]models.RankedWorker, 0, len(ranked))
	for _, candidate := range ranked {
		if strings.Contains(strings.ToLower(candidate.Location), location) {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

// filterByBudget keeps workers whose daily rate fits the budget, or whose
// hourly rate fits when projected over a work day. Workers with neither rate
// cannot be priced and are dropped.
func filterByBudget(ranked []models.RankedWorker, budget *int) []models.RankedWorker {
	if budget == nil {
		return ranked
	}
	filtered := make([]models.RankedWorker, 0, len(ranked))
	for _, candidate := range ranked {
		if candidate.DailyRate != nil && *candidate.DailyRate <= *budget {
			filtered = append(filtered, candidate)
			continue
		}
		if candidate.HourlyRate != nil && *candidate.HourlyRate*hoursPerWorkDay <= *budget {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

func distanceValue(distance *float64) float64 {
	if distance == nil {
		return math.Inf(1)
	}
	return *distance
}

// fallbackWorkers builds a small synthetic sample so a thin marketplace still
// shows plausible results. Every entry is tagged Synthetic and carries a
// negative ID so it can never collide with a stored worker.
func fallbackWorkers(skill, location string) []models.RankedWorker {
	if strings.TrimSpace(location) == "" {
		location = "Mumbai"
	}
	samples := []struct {
		name       string
		experience string
		rating     float64
		reviews    int
		hourly     int
		daily      int
	}{
		{"Ramesh Kumar", "5 years", 4.6, 23, 80, 600},
		{"Suresh Yadav", "3 years", 4.3, 11, 65, 500},
		{"Anil Sharma", "8 years", 4.8, 41, 100, 750},
	}

	ranked := make([]models.RankedWorker, 0, len(samples))
	for i, sample := range samples {
		experience := sample.experience
		hourly := sample.hourly
		daily := sample.daily
		languages := []string{"Hindi"}
		ranked = append(ranked, models.RankedWorker{
			Worker: models.Worker{
				ID:           int64(-(i + 1)),
				Name:         sample.name,
				Skill:        skill,
				Experience:   &experience,
				Location:     location,
				Languages:    &languages,
				HourlyRate:   &hourly,
				DailyRate:    &daily,
				Availability: "available",
				Rating:       sample.rating,
				TotalReviews: sample.reviews,
				IsActive:     true,
			},
			Synthetic: true,
		})
	}
	return ranked
}
