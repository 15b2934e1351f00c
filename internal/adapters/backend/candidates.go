package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/internal/domain/notes"
	"github.com/talentflow/talentflow/pkg/logger"
	"github.com/talentflow/talentflow/pkg/metrics"
)

// CandidateFilter mirrors the query parameters of GET /candidates.
type CandidateFilter struct {
	Search   string
	Stage    model.Stage // empty matches all
	Page     int
	PageSize int
}

// ListCandidates filters and paginates the candidate collection. The
// search is a case-insensitive substring match over name and email.
func (b *Backend) ListCandidates(ctx context.Context, f CandidateFilter) (model.Page[model.Candidate], error) {
	if err := b.delay(ctx); err != nil {
		return model.Page[model.Candidate]{}, err
	}

	cands, err := b.store.ListCandidates(ctx)
	if err != nil {
		return model.Page[model.Candidate]{}, fmt.Errorf("%s: %w", endpointListCandidates, err)
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		filtered := cands[:0]
		for _, c := range cands {
			if strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Email), needle) {
				filtered = append(filtered, c)
			}
		}
		cands = filtered
	}
	if f.Stage != "" {
		filtered := cands[:0]
		for _, c := range cands {
			if c.Stage == f.Stage {
				filtered = append(filtered, c)
			}
		}
		cands = filtered
	}

	pageSize := clampPageSize(f.PageSize, defaultCandidatePageSize)
	return model.Paginate(cands, f.Page, pageSize), nil
}

// GetCandidate fetches one candidate. Returns ErrNotFound when absent.
func (b *Backend) GetCandidate(ctx context.Context, id string) (model.Candidate, error) {
	if err := b.delay(ctx); err != nil {
		return model.Candidate{}, err
	}

	c, err := b.store.GetCandidate(ctx, id)
	if err != nil {
		return model.Candidate{}, b.translateStore(endpointGetCandidate, err)
	}
	return c, nil
}

// UpdateCandidate applies a partial update. A stage change synthesizes
// exactly one timeline entry recording fromStage -> toStage before the
// updated candidate is returned. The fault draw happens before any write,
// so a failed call leaves neither a candidate row nor a timeline entry.
func (b *Backend) UpdateCandidate(ctx context.Context, id string, patch model.CandidatePatch) (model.Candidate, error) {
	if err := b.delay(ctx); err != nil {
		return model.Candidate{}, err
	}
	if b.faults.shouldFail(endpointUpdateCand) {
		return model.Candidate{}, fail(endpointUpdateCand)
	}

	c, err := b.store.GetCandidate(ctx, id)
	if err != nil {
		return model.Candidate{}, b.translateStore(endpointUpdateCand, err)
	}

	stageChanged := patch.Stage != nil && *patch.Stage != c.Stage
	if stageChanged && !patch.Stage.Valid() {
		return model.Candidate{}, reject(ReasonInvalidStage, "unknown pipeline stage")
	}

	now := b.now()
	if stageChanged {
		from := c.Stage
		entry := model.TimelineEntry{
			ID:          b.newID(),
			CandidateID: id,
			FromStage:   &from,
			ToStage:     *patch.Stage,
			ChangedAt:   now,
		}
		if err := b.store.AppendTimeline(ctx, entry); err != nil {
			return model.Candidate{}, fmt.Errorf("%s: %w", endpointUpdateCand, err)
		}
		metrics.RecordStageChange()
		b.debugf(ctx, "stage changed",
			logger.String("candidate", id),
			logger.String("from", string(from)),
			logger.String("to", string(*patch.Stage)),
		)
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Stage != nil {
		c.Stage = *patch.Stage
	}
	c.UpdatedAt = now

	if err := b.store.UpdateCandidate(ctx, c); err != nil {
		return model.Candidate{}, b.translateStore(endpointUpdateCand, err)
	}
	return c, nil
}

// Timeline returns the candidate's stage history ordered by changedAt
// ascending. Reads never fault.
func (b *Backend) Timeline(ctx context.Context, candidateID string) ([]model.TimelineEntry, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	entries, err := b.store.TimelineFor(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpointTimeline, err)
	}
	return entries, nil
}

// Notes returns the candidate's notes, newest first.
func (b *Backend) Notes(ctx context.Context, candidateID string) ([]model.Note, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	ns, err := b.store.NotesFor(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpointListNotes, err)
	}
	return ns, nil
}

// AddNote appends a note, extracting @-mentions from the content when the
// caller did not supply them.
func (b *Backend) AddNote(ctx context.Context, candidateID, content string, mentions []string) (model.Note, error) {
	if err := b.delay(ctx); err != nil {
		return model.Note{}, err
	}
	if b.faults.shouldFail(endpointAddNote) {
		return model.Note{}, fail(endpointAddNote)
	}

	if strings.TrimSpace(content) == "" {
		return model.Note{}, reject(ReasonEmptyContent, "note content is required")
	}
	if _, err := b.store.GetCandidate(ctx, candidateID); err != nil {
		return model.Note{}, b.translateStore(endpointAddNote, err)
	}
	if mentions == nil {
		mentions = notes.ExtractMentions(content)
	}

	note := model.Note{
		ID:          b.newID(),
		CandidateID: candidateID,
		Content:     content,
		Mentions:    mentions,
		CreatedAt:   b.now(),
	}
	if err := b.store.AppendNote(ctx, note); err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", endpointAddNote, err)
	}
	return note, nil
}
