// Package model contains domain models passed between layers.
package model

import "time"

// Job represents an open or archived position in the pipeline.
// Order is a dense rank over the whole collection: 0..N-1, no gaps.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // unique across all jobs, case-sensitive
	Status      JobStatus `json:"status"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Department  string    `json:"department,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobStatus enumerates the job lifecycle states.
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

// JobPatch carries a partial job update. Nil fields are untouched.
type JobPatch struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Status      *JobStatus `json:"status,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Department  *string    `json:"department,omitempty"`
}

// Candidate represents an applicant attached to a job.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     Stage     `json:"stage"`
	JobID     string    `json:"jobId"` // reference only; not enforced by storage
	Phone     string    `json:"phone,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CandidatePatch carries a partial candidate update.
type CandidatePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Stage *Stage  `json:"stage,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// TimelineEntry records one stage transition. Append-only, ordered by
// ChangedAt. FromStage is nil only for an initial-creation entry.
type TimelineEntry struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	FromStage   *Stage    `json:"fromStage"`
	ToStage     Stage     `json:"toStage"`
	ChangedAt   time.Time `json:"changedAt"`
	Note        string    `json:"note,omitempty"`
}

// Note is a free-form comment on a candidate. Append-only, newest-first
// on read. Mentions preserves the order of @-references in the content.
type Note struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Content     string    `json:"content"`
	Mentions    []string  `json:"mentions"`
	CreatedAt   time.Time `json:"createdAt"`
}
