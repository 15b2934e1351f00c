// Package repository defines the persistent store interface and errors.
//
// The store is pure storage: it owns the durable copies of the five record
// collections and carries no business logic. Mutation rules (uniqueness,
// reorder arithmetic, timeline synthesis) live in the simulated backend.
package repository

import (
	"context"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// Store provides durable access to the pipeline collections.
type Store interface {
	// Jobs
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	GetJobBySlug(ctx context.Context, slug string) (model.Job, error)
	CreateJob(ctx context.Context, job model.Job) error
	UpdateJob(ctx context.Context, job model.Job) error
	// PutJobs upserts the given jobs in a single transaction. Used by the
	// reorder bulk write; either every row lands or none does.
	PutJobs(ctx context.Context, jobs []model.Job) error
	CountJobs(ctx context.Context) (int, error)

	// Candidates
	ListCandidates(ctx context.Context) ([]model.Candidate, error)
	GetCandidate(ctx context.Context, id string) (model.Candidate, error)
	CreateCandidate(ctx context.Context, c model.Candidate) error
	CreateCandidates(ctx context.Context, cs []model.Candidate) error
	UpdateCandidate(ctx context.Context, c model.Candidate) error

	// Timeline (append-only, ordered by changedAt ascending)
	TimelineFor(ctx context.Context, candidateID string) ([]model.TimelineEntry, error)
	AppendTimeline(ctx context.Context, entry model.TimelineEntry) error

	// Notes (append-only, newest-first on read)
	NotesFor(ctx context.Context, candidateID string) ([]model.Note, error)
	AppendNote(ctx context.Context, note model.Note) error

	// Assessments (tree saved atomically per job)
	AssessmentForJob(ctx context.Context, jobID string) (model.Assessment, error)
	PutAssessment(ctx context.Context, a model.Assessment) error
	PutResponse(ctx context.Context, r model.AssessmentResponse) error
	ResponseFor(ctx context.Context, assessmentID, candidateID string) (model.AssessmentResponse, error)

	// Close releases the underlying database handle.
	Close() error
}
