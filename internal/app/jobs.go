package app

import (
	"sync"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// Pagination is the list-view metadata held alongside each collection.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// JobsFilters is the jobs list view state.
type JobsFilters struct {
	Search   string
	Status   model.JobStatus
	Sort     string
	Page     int
	PageSize int
}

// JobsContainer holds the UI-visible snapshot of the jobs domain. All
// mutators are synchronous and touch only in-memory state; no I/O happens
// here. Accessors return copies so readers never observe a mutation in
// progress.
type JobsContainer struct {
	mu sync.RWMutex

	jobs       []model.Job
	current    *model.Job
	filters    JobsFilters
	pagination Pagination
	isLoading  bool
	errMsg     string
	errSeq     uint64
}

// NewJobsContainer builds an empty container with default filters.
func NewJobsContainer() *JobsContainer {
	return &JobsContainer{
		filters: JobsFilters{Sort: "order", Page: 1, PageSize: 10},
	}
}

// Jobs returns a copy of the visible job list.
func (c *JobsContainer) Jobs() []model.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Job, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Job returns the visible job with the given id.
func (c *JobsContainer) Job(id string) (model.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, j := range c.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return model.Job{}, false
}

// Current returns the denormalized "current job" reference, if set.
func (c *JobsContainer) Current() (model.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return model.Job{}, false
	}
	return *c.current, true
}

// Filters returns the current list filters.
func (c *JobsContainer) Filters() JobsFilters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// Pagination returns the current pagination metadata.
func (c *JobsContainer) Pagination() Pagination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pagination
}

// IsLoading reports the loading flag.
func (c *JobsContainer) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

// Err returns the visible error message, empty when none.
func (c *JobsContainer) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// SetPage replaces the visible collection and the pagination metadata in
// one step; no stale partial state is observable between the two.
func (c *JobsContainer) SetPage(page model.Page[model.Job]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs[:0:0], page.Data...)
	c.pagination = Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

// SetCurrent sets or clears the current job reference.
func (c *JobsContainer) SetCurrent(job *model.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if job == nil {
		c.current = nil
		return
	}
	cp := *job
	c.current = &cp
}

// SetFilters merges the given filters over the existing ones.
func (c *JobsContainer) SetFilters(apply func(*JobsFilters)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.filters)
}

// AddJob prepends a job to the visible list.
func (c *JobsContainer) AddJob(job model.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append([]model.Job{job}, c.jobs...)
}

// UpdateJob applies a structural merge to the job with the given id and
// propagates the same merge to the current-job reference when it points
// at the same entity. Untouched fields are preserved.
func (c *JobsContainer) UpdateJob(id string, apply func(*model.Job)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			apply(&c.jobs[i])
			break
		}
	}
	if c.current != nil && c.current.ID == id {
		apply(c.current)
	}
}

// ReplaceJob overwrites the stored job (and current reference) with the
// given value. Used to reconcile with the backend's authoritative object.
func (c *JobsContainer) ReplaceJob(job model.Job) {
	c.UpdateJob(job.ID, func(j *model.Job) { *j = job })
}

// RemoveJob drops a job from the visible list.
func (c *JobsContainer) RemoveJob(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			c.jobs = append(c.jobs[:i], c.jobs[i+1:]...)
			return
		}
	}
}

// ReplaceJobs swaps the whole visible list (optimistic reorder).
func (c *JobsContainer) ReplaceJobs(jobs []model.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(jobs[:0:0], jobs...)
}

// SetLoading sets the loading flag.
func (c *JobsContainer) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isLoading = v
}

// SetError surfaces an error message and returns a token identifying it;
// ClearError with the same token clears only that error, so a delayed
// auto-clear never wipes a newer one.
func (c *JobsContainer) SetError(msg string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errSeq++
	c.errMsg = msg
	return c.errSeq
}

// ClearError clears the error if token still identifies the visible one.
// A zero token clears unconditionally.
func (c *JobsContainer) ClearError(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == 0 || token == c.errSeq {
		c.errMsg = ""
	}
}
