package api

import (
	"net/http"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// AssessmentsHandler handles assessment tree requests.
type AssessmentsHandler struct {
	deps Dependencies
}

// NewAssessmentsHandler creates a new assessments handler.
func NewAssessmentsHandler(deps Dependencies) *AssessmentsHandler {
	return &AssessmentsHandler{deps: deps}
}

// HandleGet handles GET /assessments/{jobId} requests.
func (h *AssessmentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.GetAssessment(r.Context(), r.PathValue("jobId"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandlePut handles PUT /assessments/{jobId} requests. The whole tree is
// replaced as one unit.
func (h *AssessmentsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var a model.Assessment
	if err := decodeBody(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	saved, err := h.deps.SaveAssessment(r.Context(), r.PathValue("jobId"), a)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// submitRequest mirrors the POST /assessments/{jobId}/submit body.
type submitRequest struct {
	CandidateID string         `json:"candidateId"`
	Answers     map[string]any `json:"answers"`
}

// HandleSubmit handles POST /assessments/{jobId}/submit requests.
func (h *AssessmentsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.CandidateID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "candidateId is required")
		return
	}
	resp, err := h.deps.SubmitResponse(r.Context(), r.PathValue("jobId"), req.CandidateID, req.Answers)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
