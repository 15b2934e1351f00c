package api

import (
	"net/http"
	"strings"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/internal/domain/notes"
)

// CandidatesHandler handles candidate collection requests.
type CandidatesHandler struct {
	deps Dependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleList handles GET /candidates requests.
func (h *CandidatesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := backend.CandidateFilter{
		Search:   q.Get("search"),
		Stage:    model.Stage(q.Get("stage")),
		Page:     queryInt(q.Get("page")),
		PageSize: queryInt(q.Get("pageSize")),
	}
	page, err := h.deps.GetCandidates(r.Context(), f)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /candidates/{id} requests.
func (h *CandidatesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.deps.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandlePatch handles PATCH /candidates/{id} requests. Stage changes go
// through here and append a timeline entry server-side.
func (h *CandidatesHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var patch model.CandidatePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	c, err := h.deps.UpdateCandidate(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleTimeline handles GET /candidates/{id}/timeline requests.
func (h *CandidatesHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.GetTimeline(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleNotes handles GET /candidates/{id}/notes requests.
func (h *CandidatesHandler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	ns, err := h.deps.GetNotes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

// noteRequest mirrors the POST /candidates/{id}/notes body.
type noteRequest struct {
	Content string `json:"content"`
}

// HandleAddNote handles POST /candidates/{id}/notes requests. Mentions
// are extracted from the content here so the stored note carries them.
func (h *CandidatesHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "note content must not be empty")
		return
	}
	mentions := notes.ExtractMentions(req.Content)
	note, err := h.deps.AddNote(r.Context(), r.PathValue("id"), req.Content, mentions)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}
