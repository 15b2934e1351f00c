// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/domain/model"
)

// Dependencies required by HTTP handlers. The interface bundle keeps the
// handler layer loosely coupled to the client implementation.
type Dependencies interface {
	GetJobs(ctx context.Context, f backend.JobFilter) (model.Page[model.Job], error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	CreateJob(ctx context.Context, draft backend.JobDraft) (model.Job, error)
	UpdateJob(ctx context.Context, id string, patch model.JobPatch) (model.Job, error)
	ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) (model.Job, error)

	GetCandidates(ctx context.Context, f backend.CandidateFilter) (model.Page[model.Candidate], error)
	GetCandidate(ctx context.Context, id string) (model.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, patch model.CandidatePatch) (model.Candidate, error)
	GetTimeline(ctx context.Context, candidateID string) ([]model.TimelineEntry, error)
	GetNotes(ctx context.Context, candidateID string) ([]model.Note, error)
	AddNote(ctx context.Context, candidateID, content string, mentions []string) (model.Note, error)

	GetAssessment(ctx context.Context, jobID string) (model.Assessment, error)
	SaveAssessment(ctx context.Context, jobID string, a model.Assessment) (model.Assessment, error)
	SubmitResponse(ctx context.Context, jobID, candidateID string, answers map[string]any) (model.AssessmentResponse, error)
}

// Server wires HTTP routes for the pipeline API.
type Server struct {
	jobsHandler        *JobsHandler
	candidatesHandler  *CandidatesHandler
	assessmentsHandler *AssessmentsHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		jobsHandler:        NewJobsHandler(deps),
		candidatesHandler:  NewCandidatesHandler(deps),
		assessmentsHandler: NewAssessmentsHandler(deps),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))

	mux.HandleFunc("GET /jobs", MetricsMiddleware(s.jobsHandler.HandleList, "jobs"))
	mux.HandleFunc("POST /jobs", MetricsMiddleware(s.jobsHandler.HandleCreate, "jobs"))
	mux.HandleFunc("GET /jobs/{id}", MetricsMiddleware(s.jobsHandler.HandleGet, "job"))
	mux.HandleFunc("PATCH /jobs/{id}", MetricsMiddleware(s.jobsHandler.HandlePatch, "job"))
	mux.HandleFunc("PATCH /jobs/{id}/reorder", MetricsMiddleware(s.jobsHandler.HandleReorder, "job_reorder"))

	mux.HandleFunc("GET /candidates", MetricsMiddleware(s.candidatesHandler.HandleList, "candidates"))
	mux.HandleFunc("GET /candidates/{id}", MetricsMiddleware(s.candidatesHandler.HandleGet, "candidate"))
	mux.HandleFunc("PATCH /candidates/{id}", MetricsMiddleware(s.candidatesHandler.HandlePatch, "candidate"))
	mux.HandleFunc("GET /candidates/{id}/timeline", MetricsMiddleware(s.candidatesHandler.HandleTimeline, "candidate_timeline"))
	mux.HandleFunc("GET /candidates/{id}/notes", MetricsMiddleware(s.candidatesHandler.HandleNotes, "candidate_notes"))
	mux.HandleFunc("POST /candidates/{id}/notes", MetricsMiddleware(s.candidatesHandler.HandleAddNote, "candidate_notes"))

	mux.HandleFunc("GET /assessments/{jobId}", MetricsMiddleware(s.assessmentsHandler.HandleGet, "assessment"))
	mux.HandleFunc("PUT /assessments/{jobId}", MetricsMiddleware(s.assessmentsHandler.HandlePut, "assessment"))
	mux.HandleFunc("POST /assessments/{jobId}/submit", MetricsMiddleware(s.assessmentsHandler.HandleSubmit, "assessment_submit"))
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
