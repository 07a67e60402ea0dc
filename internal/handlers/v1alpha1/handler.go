// Package v1alpha1 exposes the REST surface of the matcher service.
package v1alpha1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/service"
	"github.com/jobmatch/job-matcher/pkg/requestid"
)

type ServiceHandler struct {
	resumeService   *service.ResumeService
	workflowService *service.WorkflowService
	healthService   *service.HealthService
}

func NewServiceHandler(
	resumeService *service.ResumeService,
	workflowService *service.WorkflowService,
	healthService *service.HealthService,
) *ServiceHandler {
	return &ServiceHandler{
		resumeService:   resumeService,
		workflowService: workflowService,
		healthService:   healthService,
	}
}

func (h *ServiceHandler) Routes(router chi.Router) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.GetHealth)

		r.Route("/resumes", func(r chi.Router) {
			r.Post("/", h.CreateResume)
			r.Get("/", h.ListResumes)
			r.Get("/{id}", h.GetResume)
		})

		r.Route("/workflows", func(r chi.Router) {
			r.Post("/", h.ExecuteWorkflow)
			r.Get("/{id}", h.GetExecution)
		})

		r.Get("/matches", h.ListMatches)
	})
}

func (h *ServiceHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.healthService.Health(r.Context()))
}

func (h *ServiceHandler) CreateResume(w http.ResponseWriter, r *http.Request) {
	var form api.ResumeCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	resume, err := h.resumeService.CreateResume(r.Context(), form)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resume)
}

func (h *ServiceHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid resume id")
		return
	}

	resume, err := h.resumeService.GetResume(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resume)
}

func (h *ServiceHandler) ListResumes(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		renderError(w, r, http.StatusBadRequest, "user query parameter is required")
		return
	}

	resumes, err := h.resumeService.ListResumes(r.Context(), user)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resumes)
}

func (h *ServiceHandler) ExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	var request api.WorkflowRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.ResumeId == (uuid.UUID{}) {
		renderError(w, r, http.StatusBadRequest, "resume_id is required")
		return
	}

	result, err := h.workflowService.Execute(r.Context(), request)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (h *ServiceHandler) GetExecution(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid execution id")
		return
	}

	execution, err := h.workflowService.GetExecution(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, execution)
}

func (h *ServiceHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		renderError(w, r, http.StatusBadRequest, "user query parameter is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			renderError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	matches, err := h.workflowService.ListMatches(r.Context(), user, limit)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, matches)
}

func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		resumeNotFound    *service.ErrResumeNotFound
		executionNotFound *service.ErrExecutionNotFound
		invalidResume     *service.ErrInvalidResume
	)
	switch {
	case errors.As(err, &resumeNotFound), errors.As(err, &executionNotFound):
		renderError(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidResume):
		renderError(w, r, http.StatusBadRequest, err.Error())
	default:
		renderError(w, r, http.StatusInternalServerError, err.Error())
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{
		Message:   message,
		RequestId: requestid.FromContextPtr(r.Context()),
	})
}
