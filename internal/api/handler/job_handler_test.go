package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

const validJobBody = `{
	"title": "Senior React developer needed",
	"description": "We are looking for an experienced engineer to rebuild our storefront in React.",
	"category": "web",
	"skills_required": ["react", "node"],
	"budget": 1500
}`

func TestJobHandler_Create(t *testing.T) {
	client := &domain.User{ID: "c1", Role: domain.RoleClient}
	stub := &stubJobService{
		createFn: func(_ context.Context, actor *domain.User, in ports.CreateJobInput) (*domain.Job, error) {
			if actor.ID != "c1" || in.Budget != 1500 || len(in.SkillsRequired) != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Job{ID: "j1", ClientID: actor.ID, Category: in.Category, Status: domain.JobStatusOpen}, nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/jobs", validJobBody)
	if err := withIdentity(t, c, client, handler.Create); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusCreated)

	var resp jobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Job == nil || resp.Job.ID != "j1" {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestJobHandler_CreateValidation(t *testing.T) {
	stub := &stubJobService{
		createFn: func(context.Context, *domain.User, ports.CreateJobInput) (*domain.Job, error) {
			assertNotCalled(t)
			return nil, nil
		},
	}
	handler := NewJobHandler(stub)
	client := &domain.User{ID: "c1", Role: domain.RoleClient}

	bodies := []string{
		`{"title":"short","description":"x","category":"web","skills_required":["go"],"budget":10}`,
		`{"title":"A long enough title","description":"","category":"web","skills_required":["go"],"budget":10}`,
		`{"title":"A long enough title","description":"A description that is definitely longer than fifty characters.","category":"web","skills_required":[],"budget":10}`,
		`{"title":"A long enough title","description":"A description that is definitely longer than fifty characters.","category":"web","skills_required":["go"],"budget":-1}`,
	}

	for _, body := range bodies {
		c, _ := newTestContext(http.MethodPost, "/v1/jobs", body)
		assertHTTPStatus(t, withIdentity(t, c, client, handler.Create), http.StatusBadRequest)
	}
}

func TestJobHandler_ListParsesQuery(t *testing.T) {
	var got domain.JobFilter
	stub := &stubJobService{
		listFn: func(_ context.Context, f domain.JobFilter) (*ports.JobList, error) {
			got = f
			return &ports.JobList{Items: []*domain.Job{}, Total: 0, Page: 2, Limit: 5}, nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/jobs?category=web&title=React&skills=react,node&skills=go&min_budget=100&max_budget=900.5&page=2&limit=5", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)

	if got.Category != "web" || got.Title != "React" || got.Page != 2 || got.Limit != 5 {
		t.Fatalf("unexpected filter %+v", got)
	}
	if !reflect.DeepEqual(got.Skills, []string{"react", "node", "go"}) {
		t.Fatalf("unexpected skills %v", got.Skills)
	}
	if got.MinBudget == nil || *got.MinBudget != 100 || got.MaxBudget == nil || *got.MaxBudget != 900.5 {
		t.Fatalf("unexpected budget bounds %v %v", got.MinBudget, got.MaxBudget)
	}

	var resp listJobsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Jobs == nil {
		t.Fatalf("jobs must serialise as an empty array")
	}
}

func TestJobHandler_ListMergesSkillsAlias(t *testing.T) {
	var got domain.JobFilter
	stub := &stubJobService{
		listFn: func(_ context.Context, f domain.JobFilter) (*ports.JobList, error) {
			got = f
			return &ports.JobList{Items: []*domain.Job{}}, nil
		},
	}

	c, _ := newTestContext(http.MethodGet, "/v1/jobs?skills=react&skills_required=node,go", "")
	if err := NewJobHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !reflect.DeepEqual(got.Skills, []string{"react", "node", "go"}) {
		t.Fatalf("both skill parameters must constrain the listing, got %v", got.Skills)
	}
}

func TestJobHandler_ListOmittedBudgetStaysNil(t *testing.T) {
	var got domain.JobFilter
	stub := &stubJobService{
		listFn: func(_ context.Context, f domain.JobFilter) (*ports.JobList, error) {
			got = f
			return &ports.JobList{Items: []*domain.Job{}}, nil
		},
	}

	c, _ := newTestContext(http.MethodGet, "/v1/jobs", "")
	if err := NewJobHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.MinBudget != nil || got.MaxBudget != nil || got.Skills != nil {
		t.Fatalf("absent predicates must stay unset, got %+v", got)
	}
}

func TestJobHandler_ListBadQuery(t *testing.T) {
	handler := NewJobHandler(&stubJobService{})

	c, _ := newTestContext(http.MethodGet, "/v1/jobs?min_budget=cheap", "")
	assertHTTPStatus(t, handler.List(c), http.StatusBadRequest)
}

func TestJobHandler_Delete(t *testing.T) {
	stub := &stubJobService{
		deleteFn: func(_ context.Context, jobID, actorID string) error {
			if actorID != "c1" {
				return domain.ErrNotOwner
			}
			if jobID != "j1" {
				return domain.ErrJobNotFound
			}
			return nil
		},
	}
	handler := NewJobHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/v1/jobs/j1", "")
	c.SetParamNames("job_id")
	c.SetParamValues("j1")
	if err := withIdentity(t, c, &domain.User{ID: "c1"}, handler.Delete); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusNoContent)

	c, _ = newTestContext(http.MethodDelete, "/v1/jobs/j1", "")
	c.SetParamNames("job_id")
	c.SetParamValues("j1")
	if err := withIdentity(t, c, &domain.User{ID: "c2"}, handler.Delete); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
