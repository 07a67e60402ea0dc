package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/config"
	handlers "github.com/jobmatch/job-matcher/internal/handlers/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/service"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/workflow"
)

type stubRunner struct {
	outcome workflow.Outcome
}

func (r *stubRunner) Run(_ context.Context, req workflow.RunRequest) (workflow.Outcome, error) {
	return r.outcome, nil
}

func newTestServer(t *testing.T, runner service.Runner) (*httptest.Server, store.Store) {
	t.Helper()

	db, err := store.InitDB(config.NewDefault())
	require.NoError(t, err)
	s := store.NewStore(db)
	require.NoError(t, s.InitialMigration())
	t.Cleanup(func() { _ = s.Close() })

	h := handlers.NewServiceHandler(
		service.NewResumeService(s),
		service.NewWorkflowService(s, runner),
		service.NewHealthService(s),
	)
	router := chi.NewRouter()
	router.Group(h.Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, s
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[api.Health](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "up", health.Services["database"])
}

func TestCreateAndGetResume(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp := postJSON(t, srv.URL+"/api/v1/resumes", api.ResumeCreate{
		UserEmail:  "user@example.com",
		ResumeText: "ten years of Go",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[api.Resume](t, resp)
	assert.Equal(t, "user@example.com", created.UserId)

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/resumes/%s", srv.URL, created.Id))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[api.Resume](t, resp)
	assert.Equal(t, created.Id, fetched.Id)
}

func TestCreateResumeValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp := postJSON(t, srv.URL+"/api/v1/resumes", api.ResumeCreate{ResumeText: "no user"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	apiErr := decodeBody[api.Error](t, resp)
	assert.Contains(t, apiErr.Message, "user_email")
}

func TestGetResumeNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/resumes/%s", srv.URL, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetResumeInvalidID(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp, err := http.Get(srv.URL + "/api/v1/resumes/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListResumesRequiresUser(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp, err := http.Get(srv.URL + "/api/v1/resumes/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteWorkflow(t *testing.T) {
	executionID := uuid.New()
	runner := &stubRunner{outcome: workflow.Outcome{
		ExecutionID:  executionID,
		Status:       workflow.StatusSkippedDelivery,
		FetchedCount: 7,
	}}
	srv, _ := newTestServer(t, runner)

	resp := postJSON(t, srv.URL+"/api/v1/resumes", api.ResumeCreate{
		UserEmail:  "user@example.com",
		ResumeText: "text",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resume := decodeBody[api.Resume](t, resp)

	resp = postJSON(t, srv.URL+"/api/v1/workflows", api.WorkflowRequest{ResumeId: resume.Id})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[api.WorkflowResult](t, resp)
	assert.Equal(t, executionID, result.ExecutionId)
	assert.Equal(t, "skipped_delivery", result.Status)
	assert.Equal(t, 7, result.JobsFound)
}

func TestExecuteWorkflowRequiresResumeID(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp := postJSON(t, srv.URL+"/api/v1/workflows", api.WorkflowRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteWorkflowUnknownResume(t *testing.T) {
	srv, _ := newTestServer(t, &stubRunner{})

	resp := postJSON(t, srv.URL+"/api/v1/workflows", api.WorkflowRequest{ResumeId: uuid.New()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListMatches(t *testing.T) {
	srv, s := newTestServer(t, &stubRunner{})

	matches := api.JobMatchList{
		{Job: api.Job{Id: uuid.New(), JobId: "linkedin_1", Source: "linkedin", Title: "Go Engineer", Company: "Acme", Url: "u"}, Score: 88},
	}
	require.NoError(t, s.Match().CreateMany(context.Background(), "user@example.com", uuid.New(), matches))

	resp, err := http.Get(srv.URL + "/api/v1/matches?user=user@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decodeBody[api.JobMatchList](t, resp)
	require.Len(t, listed, 1)
	assert.Equal(t, "Go Engineer", listed[0].Title)

	resp, err = http.Get(srv.URL + "/api/v1/matches")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
