package api

import (
	"net/http"
	"strconv"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/domain/model"
)

// JobsHandler handles job collection requests.
type JobsHandler struct {
	deps Dependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps Dependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

// HandleList handles GET /jobs requests.
func (h *JobsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := backend.JobFilter{
		Search:   q.Get("search"),
		Status:   model.JobStatus(q.Get("status")),
		Sort:     q.Get("sort"),
		Page:     queryInt(q.Get("page")),
		PageSize: queryInt(q.Get("pageSize")),
	}
	page, err := h.deps.GetJobs(r.Context(), f)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /jobs/{id} requests.
func (h *JobsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.deps.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// jobCreateRequest mirrors the POST /jobs body.
type jobCreateRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Department  string   `json:"department"`
}

// HandleCreate handles POST /jobs requests.
func (h *JobsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req jobCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	job, err := h.deps.CreateJob(r.Context(), backend.JobDraft{
		Title:       req.Title,
		Slug:        req.Slug,
		Status:      model.JobStatus(req.Status),
		Tags:        req.Tags,
		Description: req.Description,
		Location:    req.Location,
		Department:  req.Department,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// HandlePatch handles PATCH /jobs/{id} requests.
func (h *JobsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var patch model.JobPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	job, err := h.deps.UpdateJob(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// reorderRequest mirrors the PATCH /jobs/{id}/reorder body.
type reorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

// HandleReorder handles PATCH /jobs/{id}/reorder requests.
func (h *JobsHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	job, err := h.deps.ReorderJob(r.Context(), r.PathValue("id"), req.FromOrder, req.ToOrder)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
