package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/adapters/client"
	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/domain/conditional"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/internal/domain/notes"
	"github.com/talentflow/talentflow/internal/seed"
	"github.com/talentflow/talentflow/pkg/logger"
)

// errorSink is the error surface shared by all containers.
type errorSink interface {
	SetError(msg string) uint64
	ClearError(token uint64)
}

// Service coordinates the containers, the API client, and the optimistic
// mutation flow. All remote calls go through the client; all visible
// state lives in the containers.
type Service struct {
	log    logger.Logger
	store  repository.Store
	client *client.Client

	jobs        *JobsContainer
	candidates  *CandidatesContainer
	assessments *AssessmentContainer

	errorClearDelay time.Duration
	seedParams      seed.Params
	ownsStore       bool
	now             func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore injects an already-open store. The caller keeps ownership
// and Stop will not close it.
func WithStore(store repository.Store) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.store = store
			s.ownsStore = false
		}
	}
}

// WithClient injects a pre-built API client, bypassing backend wiring.
func WithClient(c *client.Client) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithErrorClearDelay overrides how long surfaced errors stay visible.
func WithErrorClearDelay(d time.Duration) ServiceOption {
	return func(s *Service) { s.errorClearDelay = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New wires a Service from configuration: store, simulated backend,
// client, and empty containers. Options may inject any of the pieces.
func New(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		log:             logger.Named("app"),
		jobs:            NewJobsContainer(),
		candidates:      NewCandidatesContainer(),
		assessments:     NewAssessmentContainer(),
		errorClearDelay: time.Duration(cfg.ErrorClearMS) * time.Millisecond,
		seedParams: seed.Params{
			Jobs:        cfg.SeedJobs,
			Candidates:  cfg.SeedCandidates,
			Assessments: cfg.SeedAssessments,
			Seed:        cfg.RandomSeed,
		},
		ownsStore: true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		store, err := repository.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}

	if s.client == nil {
		policyOpts := []backend.PolicyOption{
			backend.WithLatencyRange(
				time.Duration(cfg.LatencyMinMS)*time.Millisecond,
				time.Duration(cfg.LatencyMaxMS)*time.Millisecond,
			),
			backend.WithWriteFailureRate(cfg.WriteFailureRate),
			backend.WithReorderFailureRate(cfg.ReorderFailureRate),
		}
		if cfg.RandomSeed != 0 {
			policyOpts = append(policyOpts, backend.WithSeed(cfg.RandomSeed))
		}
		policy := backend.NewFaultPolicy(policyOpts...)
		b := backend.New(s.store,
			backend.WithFaultPolicy(policy),
			backend.WithLogger(s.log.Named("backend")),
			backend.WithClock(s.now),
		)
		s.client = client.New(b)
	}

	return s, nil
}

// Start seeds the store when it is empty.
func (s *Service) Start(ctx context.Context) error {
	if err := seed.Ensure(ctx, s.store, s.seedParams); err != nil {
		return err
	}
	s.log.Info(ctx, "service started")
	return nil
}

// Stop releases resources owned by the service.
func (s *Service) Stop() error {
	if s.ownsStore && s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Client exposes the underlying API client.
func (s *Service) Client() *client.Client { return s.client }

// Store exposes the persistent store, mainly for metrics and tests.
func (s *Service) Store() repository.Store { return s.store }

// Jobs exposes the jobs container.
func (s *Service) Jobs() *JobsContainer { return s.jobs }

// Candidates exposes the candidates container.
func (s *Service) Candidates() *CandidatesContainer { return s.candidates }

// Assessments exposes the assessment container.
func (s *Service) Assessments() *AssessmentContainer { return s.assessments }

// surface shows an error on a container and schedules its auto-clear.
// The token handoff guarantees a delayed clear never wipes a newer error.
func (s *Service) surface(sink errorSink, err error) {
	msg := err.Error()
	if ae, ok := client.AsAPIError(err); ok {
		msg = ae.Message
	}
	token := sink.SetError(msg)
	if s.errorClearDelay > 0 {
		time.AfterFunc(s.errorClearDelay, func() { sink.ClearError(token) })
	}
}

// LoadJobs fetches the jobs page described by the container filters.
func (s *Service) LoadJobs(ctx context.Context) error {
	f := s.jobs.Filters()
	s.jobs.SetLoading(true)
	defer s.jobs.SetLoading(false)

	page, err := s.client.GetJobs(ctx, backend.JobFilter{
		Search:   f.Search,
		Status:   f.Status,
		Sort:     f.Sort,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
	if err != nil {
		s.surface(s.jobs, err)
		return err
	}
	s.jobs.SetPage(page)
	return nil
}

// LoadJob fetches one job and makes it current.
func (s *Service) LoadJob(ctx context.Context, id string) (model.Job, error) {
	job, err := s.client.GetJob(ctx, id)
	if err != nil {
		s.surface(s.jobs, err)
		return model.Job{}, err
	}
	s.jobs.SetCurrent(&job)
	return job, nil
}

// CreateJob creates a job and prepends it to the visible list. Creation
// is not optimistic: nothing is shown until the server assigned the id,
// slug, and order.
func (s *Service) CreateJob(ctx context.Context, draft backend.JobDraft) (model.Job, error) {
	job, err := s.client.CreateJob(ctx, draft)
	if err != nil {
		s.surface(s.jobs, err)
		return model.Job{}, err
	}
	s.jobs.AddJob(job)
	return job, nil
}

// UpdateJobFields applies a patch optimistically: the container reflects
// the change immediately, the snapshot comes back verbatim on failure,
// and the server's object wins on success.
func (s *Service) UpdateJobFields(ctx context.Context, id string, patch model.JobPatch) (model.Job, error) {
	return Mutate(ctx, Mutation[model.Job]{
		Read: func() model.Job {
			j, _ := s.jobs.Job(id)
			return j
		},
		Apply: func() {
			s.jobs.UpdateJob(id, func(j *model.Job) {
				applyJobPatch(j, patch)
				j.UpdatedAt = s.now()
			})
		},
		Call: func(ctx context.Context) (model.Job, error) {
			return s.client.UpdateJob(ctx, id, patch)
		},
		Restore: func(snap model.Job) {
			if snap.ID != "" {
				s.jobs.ReplaceJob(snap)
			}
		},
		Reconcile: func(r model.Job) { s.jobs.ReplaceJob(r) },
		OnError:   func(err error) { s.surface(s.jobs, err) },
	})
}

// ToggleArchive flips a job between active and archived, optimistically.
func (s *Service) ToggleArchive(ctx context.Context, id string) (model.Job, error) {
	job, ok := s.jobs.Job(id)
	if !ok {
		var err error
		if job, err = s.client.GetJob(ctx, id); err != nil {
			s.surface(s.jobs, err)
			return model.Job{}, err
		}
	}
	next := model.JobArchived
	if job.Status == model.JobArchived {
		next = model.JobActive
	}
	return s.UpdateJobFields(ctx, id, model.JobPatch{Status: &next})
}

// ReorderJob moves a job to a new dense order position. The whole list is
// shifted locally first; failure restores the pre-move ordering exactly.
func (s *Service) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) error {
	_, err := Mutate(ctx, Mutation[[]model.Job]{
		Read: s.jobs.Jobs,
		Apply: func() {
			s.jobs.ReplaceJobs(shiftOrders(s.jobs.Jobs(), id, fromOrder, toOrder))
		},
		Call: func(ctx context.Context) ([]model.Job, error) {
			if _, err := s.client.ReorderJob(ctx, id, fromOrder, toOrder); err != nil {
				return nil, err
			}
			return nil, nil
		},
		Restore: func(snap []model.Job) { s.jobs.ReplaceJobs(snap) },
		OnError: func(err error) { s.surface(s.jobs, err) },
	})
	return err
}

// shiftOrders mirrors the server's dense reorder: jobs strictly between
// the two positions shift by one, the moved job takes toOrder, and the
// list comes back sorted by order.
func shiftOrders(jobs []model.Job, id string, fromOrder, toOrder int) []model.Job {
	out := make([]model.Job, len(jobs))
	copy(out, jobs)
	for i := range out {
		switch {
		case out[i].ID == id:
			out[i].Order = toOrder
		case fromOrder < toOrder && out[i].Order > fromOrder && out[i].Order <= toOrder:
			out[i].Order--
		case fromOrder > toOrder && out[i].Order >= toOrder && out[i].Order < fromOrder:
			out[i].Order++
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Order < out[j-1].Order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func applyJobPatch(j *model.Job, p model.JobPatch) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Slug != nil {
		j.Slug = *p.Slug
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Department != nil {
		j.Department = *p.Department
	}
}

// LoadCandidates fetches the candidates page described by the container
// search, stage filter, and pagination.
func (s *Service) LoadCandidates(ctx context.Context) error {
	s.candidates.SetLoading(true)
	defer s.candidates.SetLoading(false)

	page, err := s.client.GetCandidates(ctx, backend.CandidateFilter{
		Search:   s.candidates.SearchQuery(),
		Stage:    s.candidates.StageFilter(),
		Page:     s.candidates.Pagination().Page,
		PageSize: s.candidates.Pagination().PageSize,
	})
	if err != nil {
		s.surface(s.candidates, err)
		return err
	}
	s.candidates.SetPage(page)
	return nil
}

// LoadCandidate fetches one candidate and makes it current.
func (s *Service) LoadCandidate(ctx context.Context, id string) (model.Candidate, error) {
	c, err := s.client.GetCandidate(ctx, id)
	if err != nil {
		s.surface(s.candidates, err)
		return model.Candidate{}, err
	}
	s.candidates.SetCurrent(&c)
	return c, nil
}

// ChangeStage moves a candidate through the pipeline optimistically. The
// server appends the timeline entry; on success the timeline is
// refreshed so the new transition shows up.
func (s *Service) ChangeStage(ctx context.Context, id string, stage model.Stage) (model.Candidate, error) {
	result, err := Mutate(ctx, Mutation[model.Candidate]{
		Read: func() model.Candidate {
			c, _ := s.candidates.Candidate(id)
			return c
		},
		Apply: func() { s.candidates.SetStage(id, stage, s.now()) },
		Call: func(ctx context.Context) (model.Candidate, error) {
			return s.client.UpdateCandidate(ctx, id, model.CandidatePatch{Stage: &stage})
		},
		Restore: func(snap model.Candidate) {
			if snap.ID != "" {
				s.candidates.ReplaceCandidate(snap)
			}
		},
		Reconcile: func(r model.Candidate) { s.candidates.ReplaceCandidate(r) },
		OnError:   func(err error) { s.surface(s.candidates, err) },
	})
	if err != nil {
		return model.Candidate{}, err
	}
	if entries, terr := s.client.GetTimeline(ctx, id); terr == nil {
		s.candidates.SetTimeline(entries)
	}
	return result, nil
}

// UpdateCandidateFields applies a non-stage patch optimistically.
func (s *Service) UpdateCandidateFields(ctx context.Context, id string, patch model.CandidatePatch) (model.Candidate, error) {
	return Mutate(ctx, Mutation[model.Candidate]{
		Read: func() model.Candidate {
			c, _ := s.candidates.Candidate(id)
			return c
		},
		Apply: func() {
			s.candidates.UpdateCandidate(id, func(c *model.Candidate) {
				applyCandidatePatch(c, patch)
				c.UpdatedAt = s.now()
			})
		},
		Call: func(ctx context.Context) (model.Candidate, error) {
			return s.client.UpdateCandidate(ctx, id, patch)
		},
		Restore: func(snap model.Candidate) {
			if snap.ID != "" {
				s.candidates.ReplaceCandidate(snap)
			}
		},
		Reconcile: func(r model.Candidate) { s.candidates.ReplaceCandidate(r) },
		OnError:   func(err error) { s.surface(s.candidates, err) },
	})
}

func applyCandidatePatch(c *model.Candidate, p model.CandidatePatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}

// LoadTimeline fetches a candidate's stage history.
func (s *Service) LoadTimeline(ctx context.Context, candidateID string) error {
	entries, err := s.client.GetTimeline(ctx, candidateID)
	if err != nil {
		s.surface(s.candidates, err)
		return err
	}
	s.candidates.SetTimeline(entries)
	return nil
}

// LoadNotes fetches a candidate's notes, newest first.
func (s *Service) LoadNotes(ctx context.Context, candidateID string) error {
	ns, err := s.client.GetNotes(ctx, candidateID)
	if err != nil {
		s.surface(s.candidates, err)
		return err
	}
	s.candidates.SetNotes(ns)
	return nil
}

// AddNote attaches a note to a candidate. Mentions are extracted from
// the content before the call so the server stores them alongside.
func (s *Service) AddNote(ctx context.Context, candidateID, content string) (model.Note, error) {
	mentions := notes.ExtractMentions(content)
	note, err := s.client.AddNote(ctx, candidateID, content, mentions)
	if err != nil {
		s.surface(s.candidates, err)
		return model.Note{}, err
	}
	s.candidates.AddNote(note)
	return note, nil
}

// LoadAssessment fetches a job's assessment into the builder. A job with
// no assessment yet gets a fresh empty tree so the builder can start
// from scratch.
func (s *Service) LoadAssessment(ctx context.Context, jobID string) (model.Assessment, error) {
	s.assessments.SetLoading(true)
	defer s.assessments.SetLoading(false)

	a, err := s.client.GetAssessment(ctx, jobID)
	if err != nil {
		if ae, ok := client.AsAPIError(err); ok && ae.Status == 404 {
			a = model.Assessment{
				ID:        uuid.NewString(),
				JobID:     jobID,
				Title:     "Untitled Assessment",
				CreatedAt: s.now(),
				UpdatedAt: s.now(),
			}
			s.assessments.SetAssessment(a)
			return a, nil
		}
		s.surface(s.assessments, err)
		return model.Assessment{}, err
	}
	s.assessments.SetAssessment(a)
	return a, nil
}

// SaveAssessment persists the builder's working tree as one unit.
func (s *Service) SaveAssessment(ctx context.Context, jobID string) (model.Assessment, error) {
	tree, ok := s.assessments.Tree()
	if !ok {
		err := fmt.Errorf("no assessment loaded for job %s", jobID)
		s.surface(s.assessments, err)
		return model.Assessment{}, err
	}
	saved, err := s.client.SaveAssessment(ctx, jobID, tree)
	if err != nil {
		s.surface(s.assessments, err)
		return model.Assessment{}, err
	}
	s.assessments.SetAssessment(saved)
	return saved, nil
}

// SubmitResponse sends the preview answers for a candidate. Answers to
// questions hidden by conditional rules are dropped before submission.
func (s *Service) SubmitResponse(ctx context.Context, jobID, candidateID string) (model.AssessmentResponse, error) {
	tree, ok := s.assessments.Tree()
	if !ok {
		err := fmt.Errorf("no assessment loaded for job %s", jobID)
		s.surface(s.assessments, err)
		return model.AssessmentResponse{}, err
	}
	all := s.assessments.Responses()
	visible := make(map[string]any, len(all))
	for _, q := range tree.Questions {
		if v, answered := all[q.ID]; answered && conditional.Visible(q, tree.Questions, all) {
			visible[q.ID] = v
		}
	}

	resp, err := s.client.SubmitResponse(ctx, jobID, candidateID, visible)
	if err != nil {
		s.surface(s.assessments, err)
		return model.AssessmentResponse{}, err
	}
	s.assessments.ClearResponses()
	return resp, nil
}
