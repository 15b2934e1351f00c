// Package client is the typed request/response boundary between UI-facing
// code and the simulated backend. It translates backend failures into
// HTTP-like typed errors and never retries: rollback is the optimistic
// coordinator's responsibility, not the client's.
package client

import (
	"context"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/domain/model"
)

// Client wraps the simulated backend with error translation.
type Client struct {
	backend *backend.Backend
}

// New builds a Client over the given backend.
func New(b *backend.Backend) *Client {
	return &Client{backend: b}
}

// GetJobs lists jobs with filtering and pagination.
func (c *Client) GetJobs(ctx context.Context, f backend.JobFilter) (model.Page[model.Job], error) {
	page, err := c.backend.ListJobs(ctx, f)
	if err != nil {
		return model.Page[model.Job]{}, translate(err, "failed to fetch jobs")
	}
	return page, nil
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, id string) (model.Job, error) {
	job, err := c.backend.GetJob(ctx, id)
	if err != nil {
		return model.Job{}, translate(err, "failed to fetch job")
	}
	return job, nil
}

// CreateJob creates a new job.
func (c *Client) CreateJob(ctx context.Context, draft backend.JobDraft) (model.Job, error) {
	job, err := c.backend.CreateJob(ctx, draft)
	if err != nil {
		return model.Job{}, translate(err, "failed to create job")
	}
	return job, nil
}

// UpdateJob applies a partial update to a job.
func (c *Client) UpdateJob(ctx context.Context, id string, patch model.JobPatch) (model.Job, error) {
	job, err := c.backend.UpdateJob(ctx, id, patch)
	if err != nil {
		return model.Job{}, translate(err, "failed to update job")
	}
	return job, nil
}

// ReorderJob repositions a job within the dense ordering.
func (c *Client) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) (model.Job, error) {
	job, err := c.backend.ReorderJob(ctx, id, fromOrder, toOrder)
	if err != nil {
		return model.Job{}, translate(err, "failed to reorder job")
	}
	return job, nil
}

// GetCandidates lists candidates with filtering and pagination.
func (c *Client) GetCandidates(ctx context.Context, f backend.CandidateFilter) (model.Page[model.Candidate], error) {
	page, err := c.backend.ListCandidates(ctx, f)
	if err != nil {
		return model.Page[model.Candidate]{}, translate(err, "failed to fetch candidates")
	}
	return page, nil
}

// GetCandidate fetches one candidate by id.
func (c *Client) GetCandidate(ctx context.Context, id string) (model.Candidate, error) {
	cand, err := c.backend.GetCandidate(ctx, id)
	if err != nil {
		return model.Candidate{}, translate(err, "failed to fetch candidate")
	}
	return cand, nil
}

// UpdateCandidate applies a partial update (stage transitions included).
func (c *Client) UpdateCandidate(ctx context.Context, id string, patch model.CandidatePatch) (model.Candidate, error) {
	cand, err := c.backend.UpdateCandidate(ctx, id, patch)
	if err != nil {
		return model.Candidate{}, translate(err, "failed to update candidate")
	}
	return cand, nil
}

// GetTimeline fetches a candidate's ordered stage history.
func (c *Client) GetTimeline(ctx context.Context, candidateID string) ([]model.TimelineEntry, error) {
	entries, err := c.backend.Timeline(ctx, candidateID)
	if err != nil {
		return nil, translate(err, "failed to fetch timeline")
	}
	return entries, nil
}

// GetNotes fetches a candidate's notes, newest first.
func (c *Client) GetNotes(ctx context.Context, candidateID string) ([]model.Note, error) {
	ns, err := c.backend.Notes(ctx, candidateID)
	if err != nil {
		return nil, translate(err, "failed to fetch notes")
	}
	return ns, nil
}

// AddNote appends a note to a candidate.
func (c *Client) AddNote(ctx context.Context, candidateID, content string, mentions []string) (model.Note, error) {
	note, err := c.backend.AddNote(ctx, candidateID, content, mentions)
	if err != nil {
		return model.Note{}, translate(err, "failed to add note")
	}
	return note, nil
}

// GetAssessment fetches the assessment tree for a job.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (model.Assessment, error) {
	a, err := c.backend.AssessmentForJob(ctx, jobID)
	if err != nil {
		return model.Assessment{}, translate(err, "failed to fetch assessment")
	}
	return a, nil
}

// SaveAssessment replaces the assessment tree for a job.
func (c *Client) SaveAssessment(ctx context.Context, jobID string, a model.Assessment) (model.Assessment, error) {
	saved, err := c.backend.SaveAssessment(ctx, jobID, a)
	if err != nil {
		return model.Assessment{}, translate(err, "failed to save assessment")
	}
	return saved, nil
}

// SubmitResponse records a candidate's answers for a job's assessment.
func (c *Client) SubmitResponse(ctx context.Context, jobID, candidateID string, answers map[string]any) (model.AssessmentResponse, error) {
	resp, err := c.backend.SubmitResponse(ctx, jobID, candidateID, answers)
	if err != nil {
		return model.AssessmentResponse{}, translate(err, "failed to submit assessment")
	}
	return resp, nil
}
