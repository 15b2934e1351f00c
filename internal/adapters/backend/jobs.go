package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/logger"
	"github.com/talentflow/talentflow/pkg/metrics"
)

// JobFilter mirrors the query parameters of GET /jobs.
type JobFilter struct {
	Search   string
	Status   model.JobStatus // empty matches all
	Sort     string          // order | title | createdAt (default order)
	Page     int
	PageSize int
}

// JobDraft carries the fields accepted by POST /jobs.
type JobDraft struct {
	Title       string
	Slug        string // derived from Title when empty
	Status      model.JobStatus
	Tags        []string
	Description string
	Location    string
	Department  string
}

// ListJobs filters, sorts, and paginates the job collection.
// Reads are delayed but never fault-injected.
func (b *Backend) ListJobs(ctx context.Context, f JobFilter) (model.Page[model.Job], error) {
	if err := b.delay(ctx); err != nil {
		return model.Page[model.Job]{}, err
	}

	jobs, err := b.store.ListJobs(ctx)
	if err != nil {
		return model.Page[model.Job]{}, fmt.Errorf("%s: %w", endpointListJobs, err)
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		filtered := jobs[:0]
		for _, j := range jobs {
			if matchesJob(j, needle) {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}
	if f.Status != "" {
		filtered := jobs[:0]
		for _, j := range jobs {
			if j.Status == f.Status {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}

	sortJobs(jobs, f.Sort)

	pageSize := clampPageSize(f.PageSize, defaultJobPageSize)
	return model.Paginate(jobs, f.Page, pageSize), nil
}

// matchesJob implements the case-insensitive substring search over the
// title and tags.
func matchesJob(j model.Job, needle string) bool {
	if strings.Contains(strings.ToLower(j.Title), needle) {
		return true
	}
	for _, tag := range j.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortJobs(jobs []model.Job, key string) {
	switch key {
	case "title":
		sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].Title < jobs[k].Title })
	case "createdAt":
		// Newest first, like the board's "recent" view.
		sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
	default:
		sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].Order < jobs[k].Order })
	}
}

func clampPageSize(size, fallback int) int {
	if size < 1 {
		return fallback
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// GetJob fetches one job. Returns ErrNotFound when absent.
func (b *Backend) GetJob(ctx context.Context, id string) (model.Job, error) {
	if err := b.delay(ctx); err != nil {
		return model.Job{}, err
	}

	job, err := b.store.GetJob(ctx, id)
	if err != nil {
		return model.Job{}, b.translateStore(endpointGetJob, err)
	}
	return job, nil
}

// CreateJob validates and persists a new job at the end of the ordering.
// Validation (missing title, duplicate slug) is deterministic; the fault
// draw precedes it so a validation verdict is never masked by a 500.
func (b *Backend) CreateJob(ctx context.Context, draft JobDraft) (model.Job, error) {
	if err := b.delay(ctx); err != nil {
		return model.Job{}, err
	}
	if b.faults.shouldFail(endpointCreateJob) {
		return model.Job{}, fail(endpointCreateJob)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return model.Job{}, reject(ReasonMissingTitle, "title is required")
	}

	slug := draft.Slug
	if slug == "" {
		slug = model.Slugify(draft.Title)
	}

	existing, err := b.store.ListJobs(ctx)
	if err != nil {
		return model.Job{}, fmt.Errorf("%s: %w", endpointCreateJob, err)
	}
	maxOrder := -1
	for _, j := range existing {
		if j.Slug == slug {
			return model.Job{}, reject(ReasonDuplicateSlug, "slug must be unique")
		}
		if j.Order > maxOrder {
			maxOrder = j.Order
		}
	}

	status := draft.Status
	if status == "" {
		status = model.JobActive
	}

	now := b.now()
	job := model.Job{
		ID:          b.newID(),
		Title:       draft.Title,
		Slug:        slug,
		Status:      status,
		Tags:        draft.Tags,
		Order:       maxOrder + 1,
		Description: draft.Description,
		Location:    draft.Location,
		Department:  draft.Department,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.store.CreateJob(ctx, job); err != nil {
		return model.Job{}, fmt.Errorf("%s: %w", endpointCreateJob, err)
	}

	b.debugf(ctx, "job created", logger.String("id", job.ID), logger.String("slug", job.Slug))
	return job, nil
}

// UpdateJob applies a partial update. A slug change re-runs the uniqueness
// check against every other job (case-sensitive exact match).
func (b *Backend) UpdateJob(ctx context.Context, id string, patch model.JobPatch) (model.Job, error) {
	if err := b.delay(ctx); err != nil {
		return model.Job{}, err
	}
	if b.faults.shouldFail(endpointUpdateJob) {
		return model.Job{}, fail(endpointUpdateJob)
	}

	job, err := b.store.GetJob(ctx, id)
	if err != nil {
		return model.Job{}, b.translateStore(endpointUpdateJob, err)
	}

	if patch.Slug != nil && *patch.Slug != job.Slug {
		other, err := b.store.GetJobBySlug(ctx, *patch.Slug)
		if err == nil && other.ID != id {
			return model.Job{}, reject(ReasonDuplicateSlug, "slug must be unique")
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return model.Job{}, fmt.Errorf("%s: %w", endpointUpdateJob, err)
		}
		job.Slug = *patch.Slug
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return model.Job{}, reject(ReasonMissingTitle, "title is required")
		}
		job.Title = *patch.Title
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Tags != nil {
		job.Tags = *patch.Tags
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.Department != nil {
		job.Department = *patch.Department
	}
	job.UpdatedAt = b.now()

	if err := b.store.UpdateJob(ctx, job); err != nil {
		return model.Job{}, b.translateStore(endpointUpdateJob, err)
	}
	return job, nil
}

// ReorderJob moves the job at fromOrder to toOrder, shifting every job
// whose order lies strictly between the bounds by one to close the gap,
// and writes the whole affected set in a single transaction. The order
// values stay dense: exactly {0..N-1}, no gaps, no duplicates.
func (b *Backend) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) (model.Job, error) {
	if err := b.delay(ctx); err != nil {
		return model.Job{}, err
	}
	if b.faults.shouldFail(endpointReorderJob) {
		return model.Job{}, fail(endpointReorderJob)
	}

	jobs, err := b.store.ListJobs(ctx)
	if err != nil {
		return model.Job{}, fmt.Errorf("%s: %w", endpointReorderJob, err)
	}
	if toOrder < 0 || toOrder >= len(jobs) {
		return model.Job{}, reject(ReasonInvalidRange, "target order out of range")
	}

	var moved *model.Job
	now := b.now()
	for i := range jobs {
		j := &jobs[i]
		switch {
		case j.ID == id:
			j.Order = toOrder
			j.UpdatedAt = now
			moved = j
		case fromOrder < toOrder && j.Order > fromOrder && j.Order <= toOrder:
			// Moving forward: the span shifts down one.
			j.Order--
			j.UpdatedAt = now
		case fromOrder > toOrder && j.Order >= toOrder && j.Order < fromOrder:
			// Moving backward: the span shifts up one.
			j.Order++
			j.UpdatedAt = now
		}
	}
	if moved == nil {
		return model.Job{}, fmt.Errorf("%s: %w", endpointReorderJob, ErrNotFound)
	}

	if err := b.store.PutJobs(ctx, jobs); err != nil {
		return model.Job{}, fmt.Errorf("%s: %w", endpointReorderJob, err)
	}

	metrics.RecordReorder()
	b.debugf(ctx, "job reordered",
		logger.String("id", id),
		logger.Int("from", fromOrder),
		logger.Int("to", toOrder),
	)
	return *moved, nil
}

// translateStore maps store sentinels into the backend error taxonomy.
func (b *Backend) translateStore(endpoint string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", endpoint, err)
}
