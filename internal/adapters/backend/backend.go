// Package backend simulates the network service the client would normally
// talk to: every call sleeps for a randomized duration, mutating calls may
// fail with an injected server error before touching storage, and all
// mutation business logic (uniqueness checks, reorder arithmetic, timeline
// synthesis, pagination) lives here, never in the store or the containers.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/pkg/logger"
	"github.com/talentflow/talentflow/pkg/metrics"
)

// Endpoint names used for fault-rate selection, metrics, and error text.
const (
	endpointListJobs       = "list_jobs"
	endpointGetJob         = "get_job"
	endpointCreateJob      = "create_job"
	endpointUpdateJob      = "update_job"
	endpointReorderJob     = "reorder_job"
	endpointListCandidates = "list_candidates"
	endpointGetCandidate   = "get_candidate"
	endpointUpdateCand     = "update_candidate"
	endpointTimeline       = "timeline"
	endpointListNotes      = "list_notes"
	endpointAddNote        = "add_note"
	endpointGetAssessment  = "get_assessment"
	endpointSaveAssessment = "save_assessment"
	endpointSubmitResponse = "submit_response"
)

// Pagination defaults applied when a filter leaves them zero.
const (
	defaultJobPageSize       = 10
	defaultCandidatePageSize = 50
	maxPageSize              = 100
)

// Backend executes logical API calls against the persistent store through
// the fault policy.
type Backend struct {
	store  repository.Store
	faults *FaultPolicy
	log    logger.Logger

	// Injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// Option applies a configuration option to the Backend.
type Option func(*Backend)

// WithFaultPolicy replaces the default fault policy.
func WithFaultPolicy(p *FaultPolicy) Option {
	return func(b *Backend) {
		if p != nil {
			b.faults = p
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator replaces the record id generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Backend) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// New builds a Backend over the given store.
func New(store repository.Store, opts ...Option) *Backend {
	b := &Backend{
		store:  store,
		faults: NewFaultPolicy(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// delay injects the randomized latency, honoring ctx cancellation.
func (b *Backend) delay(ctx context.Context) error {
	d := b.faults.latency()
	metrics.RecordBackendLatency(float64(d.Milliseconds()))
	select {
	case <-ctx.Done():
		return fmt.Errorf("request abandoned: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// reject records and returns a deterministic validation error.
func reject(reason, message string) error {
	metrics.RecordValidationFailure(reason)
	return &ValidationError{Reason: reason, Message: message}
}

func (b *Backend) debugf(ctx context.Context, msg string, fields ...logger.Field) {
	if b.log != nil {
		b.log.Debug(ctx, msg, fields...)
	}
}
