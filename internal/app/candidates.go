package app

import (
	"sync"
	"time"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// CandidatesContainer holds the UI-visible snapshot of the candidates
// domain: the current list/kanban page, the open profile with its timeline
// and notes, and the list view state. Mutators are synchronous and free of
// I/O, same contract as JobsContainer.
type CandidatesContainer struct {
	mu sync.RWMutex

	candidates []model.Candidate
	current    *model.Candidate
	timeline   []model.TimelineEntry
	notes      []model.Note

	searchQuery string
	stageFilter model.Stage
	pagination  Pagination

	isLoading bool
	errMsg    string
	errSeq    uint64
}

// NewCandidatesContainer builds an empty container.
func NewCandidatesContainer() *CandidatesContainer {
	return &CandidatesContainer{
		pagination: Pagination{Page: 1, PageSize: 50},
	}
}

// Candidates returns a copy of the visible candidate list.
func (c *CandidatesContainer) Candidates() []model.Candidate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// Candidate returns the visible candidate with the given id.
func (c *CandidatesContainer) Candidate(id string) (model.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cand := range c.candidates {
		if cand.ID == id {
			return cand, true
		}
	}
	if c.current != nil && c.current.ID == id {
		return *c.current, true
	}
	return model.Candidate{}, false
}

// Current returns the open candidate profile, if any.
func (c *CandidatesContainer) Current() (model.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return model.Candidate{}, false
	}
	return *c.current, true
}

// Timeline returns a copy of the loaded stage history.
func (c *CandidatesContainer) Timeline() []model.TimelineEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.TimelineEntry, len(c.timeline))
	copy(out, c.timeline)
	return out
}

// Notes returns a copy of the loaded notes, newest first.
func (c *CandidatesContainer) Notes() []model.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// SearchQuery returns the list search input.
func (c *CandidatesContainer) SearchQuery() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchQuery
}

// StageFilter returns the active stage filter, empty for all stages.
func (c *CandidatesContainer) StageFilter() model.Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stageFilter
}

// Pagination returns the current pagination metadata.
func (c *CandidatesContainer) Pagination() Pagination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pagination
}

// IsLoading reports the loading flag.
func (c *CandidatesContainer) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

// Err returns the visible error message, empty when none.
func (c *CandidatesContainer) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// SetPage replaces the visible collection and pagination atomically.
func (c *CandidatesContainer) SetPage(page model.Page[model.Candidate]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidates = append(c.candidates[:0:0], page.Data...)
	c.pagination = Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

// SetCurrent sets or clears the open candidate profile.
func (c *CandidatesContainer) SetCurrent(cand *model.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cand == nil {
		c.current = nil
		return
	}
	cp := *cand
	c.current = &cp
}

// SetTimeline replaces the loaded stage history.
func (c *CandidatesContainer) SetTimeline(entries []model.TimelineEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeline = append(entries[:0:0], entries...)
}

// SetNotes replaces the loaded notes.
func (c *CandidatesContainer) SetNotes(notes []model.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(notes[:0:0], notes...)
}

// AddNote prepends a note, keeping newest-first order.
func (c *CandidatesContainer) AddNote(note model.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append([]model.Note{note}, c.notes...)
}

// SetSearchQuery sets the list search input.
func (c *CandidatesContainer) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = q
}

// SetStageFilter sets the active stage filter.
func (c *CandidatesContainer) SetStageFilter(stage model.Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stageFilter = stage
}

// SetPageNumber moves the list to another page without touching data.
func (c *CandidatesContainer) SetPageNumber(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pagination.Page = page
}

// UpdateCandidate applies a structural merge to the candidate with the
// given id, propagated to the open profile when it is the same entity.
func (c *CandidatesContainer) UpdateCandidate(id string, apply func(*model.Candidate)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.candidates {
		if c.candidates[i].ID == id {
			apply(&c.candidates[i])
			break
		}
	}
	if c.current != nil && c.current.ID == id {
		apply(c.current)
	}
}

// ReplaceCandidate overwrites the stored candidate (and profile) with the
// given value, reconciling with the backend's authoritative object.
func (c *CandidatesContainer) ReplaceCandidate(cand model.Candidate) {
	c.UpdateCandidate(cand.ID, func(m *model.Candidate) { *m = cand })
}

// SetStage is the optimistic kanban move: stage plus updatedAt, list and
// profile in one synchronous step.
func (c *CandidatesContainer) SetStage(id string, stage model.Stage, at time.Time) {
	c.UpdateCandidate(id, func(m *model.Candidate) {
		m.Stage = stage
		m.UpdatedAt = at
	})
}

// SetLoading sets the loading flag.
func (c *CandidatesContainer) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isLoading = v
}

// SetError surfaces an error message; see JobsContainer.SetError for the
// token contract.
func (c *CandidatesContainer) SetError(msg string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errSeq++
	c.errMsg = msg
	return c.errSeq
}

// ClearError clears the error if token still identifies the visible one.
func (c *CandidatesContainer) ClearError(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == 0 || token == c.errSeq {
		c.errMsg = ""
	}
}
