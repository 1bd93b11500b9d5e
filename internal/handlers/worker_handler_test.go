package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type stubWorkerMatcher struct {
	workers []models.RankedWorker
	err     error
	query   services.MatchQuery
	limit   int
}

func (s *stubWorkerMatcher) Match(_ context.Context, query services.MatchQuery, poolLimit int) ([]models.RankedWorker, error) {
	s.query = query
	s.limit = poolLimit
	if s.err != nil {
		return nil, s.err
	}
	return s.workers, nil
}

func searchApp(handler *WorkerHandler, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Get("/api/v1/workers/search", handler.SearchWorkers)
	return app
}

func TestSearchWorkersPassesQueryToMatcher(t *testing.T) {
	daily := 450
	matcher := &stubWorkerMatcher{
		workers: []models.RankedWorker{{
			Worker: models.Worker{
				ID:        3,
				Name:      "Ravi",
				Skill:     "Plumber",
				Location:  "Andheri West",
				DailyRate: &daily,
				Rating:    4.5,
				IsActive:  true,
			},
		}},
	}
	handler := &WorkerHandler{matcher: matcher}
	app := searchApp(handler, "employer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/search?skill=Plumber&location=Andheri&budget=500&lat=19.0760&lng=72.8777&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if matcher.query.Skill != "Plumber" || matcher.query.Location != "Andheri" {
		t.Fatalf("unexpected query: %+v", matcher.query)
	}
	if matcher.query.Budget == nil || *matcher.query.Budget != 500 {
		t.Fatalf("expected budget 500, got %+v", matcher.query.Budget)
	}
	if matcher.query.RequesterLat == nil || matcher.query.RequesterLng == nil {
		t.Fatal("expected coordinates to be forwarded")
	}
	if matcher.limit != 5 {
		t.Fatalf("expected limit 5, got %d", matcher.limit)
	}

	var body struct {
		Workers []models.RankedWorker `json:"workers"`
		Count   int                   `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Count != 1 || len(body.Workers) != 1 || body.Workers[0].ID != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSearchWorkersDefaultsLimit(t *testing.T) {
	matcher := &stubWorkerMatcher{}
	handler := &WorkerHandler{matcher: matcher}
	app := searchApp(handler, "employer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/search?skill=Electrician", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if matcher.limit != defaultSearchLimit {
		t.Fatalf("expected default limit %d, got %d", defaultSearchLimit, matcher.limit)
	}
}

func TestSearchWorkersRejectsNonEmployer(t *testing.T) {
	handler := &WorkerHandler{matcher: &stubWorkerMatcher{}}
	app := searchApp(handler, "worker")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/search?skill=Plumber", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSearchWorkersMapsInvalidQuery(t *testing.T) {
	handler := &WorkerHandler{matcher: &stubWorkerMatcher{err: services.ErrInvalidQuery}}
	app := searchApp(handler, "employer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchWorkersRejectsMalformedBudget(t *testing.T) {
	handler := &WorkerHandler{matcher: &stubWorkerMatcher{}}
	app := searchApp(handler, "employer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/search?skill=Plumber&budget=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
