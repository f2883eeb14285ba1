package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"hired/interview-service/internal/models"
	"hired/interview-service/internal/repositories"
)

type listCall struct {
	Designation string
	Limit       int
}

type fakeResultRepo struct {
	results []models.InterviewResult
	err     error
	lists   []listCall
}

func (f *fakeResultRepo) Create(result *models.InterviewResult) error {
	f.results = append(f.results, *result)
	return f.err
}

func (f *fakeResultRepo) FindBySessionID(sessionID string) (*models.InterviewResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.results {
		if f.results[i].SessionID == sessionID {
			return &f.results[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeResultRepo) List(designation string, limit int) ([]models.InterviewResult, error) {
	f.lists = append(f.lists, listCall{designation, limit})
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newResultApp(repo repositories.InterviewResultRepository) *fiber.App {
	h := NewResultHandler(repo)
	app := fiber.New()
	app.Get("/interview/history", h.HandleListResults)
	app.Get("/interview/history/:session_id", h.HandleGetResult)
	return app
}

func TestHandleListResults(t *testing.T) {
	repo := &fakeResultRepo{results: []models.InterviewResult{
		{SessionID: "a", Designation: "QA", TotalScore: 50, CompletedAt: time.Now()},
	}}

	status, body := doRequest(t, newResultApp(repo), httpGet("/interview/history?designation=QA&limit=500"))

	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["count"] != float64(1) {
		t.Errorf("body = %v", body)
	}
	if call := repo.lists[0]; call.Designation != "QA" || call.Limit != maxHistoryLimit {
		t.Errorf("list call = %+v", call)
	}
}

func TestHandleListResults_DefaultLimit(t *testing.T) {
	repo := &fakeResultRepo{}

	if status, _ := doRequest(t, newResultApp(repo), httpGet("/interview/history")); status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if repo.lists[0].Limit != defaultHistoryLimit {
		t.Errorf("limit = %d, want %d", repo.lists[0].Limit, defaultHistoryLimit)
	}
}

func TestHandleListResults_BadLimit(t *testing.T) {
	for _, limit := range []string{"0", "-4", "ten"} {
		status, _ := doRequest(t, newResultApp(&fakeResultRepo{}), httpGet("/interview/history?limit="+limit))
		if status != fiber.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, status)
		}
	}
}

func TestHandleGetResult(t *testing.T) {
	repo := &fakeResultRepo{results: []models.InterviewResult{{SessionID: "sess-1", TotalScore: 160, PercentageScore: 80}}}
	app := newResultApp(repo)

	status, body := doRequest(t, app, httpGet("/interview/history/sess-1"))
	if status != fiber.StatusOK || body["total_score"] != float64(160) {
		t.Fatalf("status = %d body = %v", status, body)
	}

	if status, _ := doRequest(t, app, httpGet("/interview/history/unknown")); status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestHandleGetResult_RepositoryError(t *testing.T) {
	repo := &fakeResultRepo{err: errors.New("connection reset")}

	if status, _ := doRequest(t, newResultApp(repo), httpGet("/interview/history/x")); status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
}

func httpGet(target string) *http.Request {
	return jsonRequest(http.MethodGet, target, "")
}
