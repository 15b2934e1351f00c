package backend_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// reliablePolicy removes latency and faults so tests are deterministic.
func reliablePolicy() *backend.FaultPolicy {
	return backend.NewFaultPolicy(
		backend.WithLatencyRange(0, 0),
		backend.WithWriteFailureRate(0),
		backend.WithReorderFailureRate(0),
	)
}

// failingPolicy injects a fault on every write.
func failingPolicy() *backend.FaultPolicy {
	return backend.NewFaultPolicy(
		backend.WithLatencyRange(0, 0),
		backend.WithWriteFailureRate(1),
		backend.WithReorderFailureRate(1),
	)
}

func newBackend(t *testing.T, policy *backend.FaultPolicy) (*backend.Backend, repository.Store) {
	t.Helper()
	store, err := repository.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return backend.New(store, backend.WithFaultPolicy(policy)), store
}

func seedJobs(t *testing.T, store repository.Store, n int) []model.Job {
	t.Helper()
	now := time.Now().UTC()
	jobs := make([]model.Job, 0, n)
	for i := 0; i < n; i++ {
		j := model.Job{
			ID:        fmt.Sprintf("job-%d", i),
			Title:     fmt.Sprintf("Job %d", i),
			Slug:      fmt.Sprintf("job-%d", i),
			Status:    model.JobActive,
			Order:     i,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now,
		}
		if err := store.CreateJob(context.Background(), j); err != nil {
			t.Fatalf("seed job: %v", err)
		}
		jobs = append(jobs, j)
	}
	return jobs
}

func ordersByID(t *testing.T, store repository.Store) map[string]int {
	t.Helper()
	jobs, err := store.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	out := make(map[string]int, len(jobs))
	for _, j := range jobs {
		out[j.ID] = j.Order
	}
	return out
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend over an empty store", t, func() {
		b, store := newBackend(t, reliablePolicy())

		Convey("When creating a job with only a title", func() {
			job, err := b.CreateJob(ctx, backend.JobDraft{Title: "Senior Gopher!"})

			Convey("Then the slug is derived and the order starts at zero", func() {
				So(err, ShouldBeNil)
				So(job.ID, ShouldNotBeEmpty)
				So(job.Slug, ShouldEqual, "senior-gopher")
				So(job.Order, ShouldEqual, 0)
				So(job.Status, ShouldEqual, model.JobActive)
			})

			Convey("And a second job takes the next order", func() {
				second, err := b.CreateJob(ctx, backend.JobDraft{Title: "Backend Engineer"})
				So(err, ShouldBeNil)
				So(second.Order, ShouldEqual, 1)
			})
		})

		Convey("When creating a job without a title", func() {
			_, err := b.CreateJob(ctx, backend.JobDraft{Title: "   "})

			Convey("Then the request is rejected deterministically", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonMissingTitle)
			})
		})

		Convey("When creating a job whose slug already exists", func() {
			seedJobs(t, store, 1)
			_, err := b.CreateJob(ctx, backend.JobDraft{Title: "Job 0"})

			Convey("Then the duplicate slug is rejected", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonDuplicateSlug)
			})
		})
	})
}

func TestListJobs(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with ten seeded jobs", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedJobs(t, store, 10)

		Convey("When listing with a small page size", func() {
			page, err := b.ListJobs(ctx, backend.JobFilter{Page: 2, PageSize: 3})

			Convey("Then the envelope is consistent with the totals", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 10)
				So(page.TotalPages, ShouldEqual, 4)
				So(len(page.Data), ShouldEqual, 3)
				So(page.Page, ShouldEqual, 2)
			})
		})

		Convey("When listing a page past the end", func() {
			page, err := b.ListJobs(ctx, backend.JobFilter{Page: 99, PageSize: 3})

			Convey("Then the data is empty but the envelope still reports totals", func() {
				So(err, ShouldBeNil)
				So(len(page.Data), ShouldEqual, 0)
				So(page.Total, ShouldEqual, 10)
			})
		})

		Convey("When searching by title substring", func() {
			page, err := b.ListJobs(ctx, backend.JobFilter{Search: "job 7", PageSize: 10})

			Convey("Then only matching jobs come back", func() {
				So(err, ShouldBeNil)
				So(len(page.Data), ShouldEqual, 1)
				So(page.Data[0].ID, ShouldEqual, "job-7")
			})
		})

		Convey("When sorting by order", func() {
			page, err := b.ListJobs(ctx, backend.JobFilter{Sort: "order", PageSize: 10})

			Convey("Then jobs come back in display order", func() {
				So(err, ShouldBeNil)
				for i, j := range page.Data {
					So(j.Order, ShouldEqual, i)
				}
			})
		})
	})
}

func TestReorderJob(t *testing.T) {
	ctx := context.Background()

	Convey("Given three jobs ordered 0,1,2", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedJobs(t, store, 3)

		Convey("When moving the first job to position 2", func() {
			moved, err := b.ReorderJob(ctx, "job-0", 0, 2)

			Convey("Then the jobs between shift down and the moved job lands last", func() {
				So(err, ShouldBeNil)
				So(moved.Order, ShouldEqual, 2)
				orders := ordersByID(t, store)
				So(orders["job-1"], ShouldEqual, 0)
				So(orders["job-2"], ShouldEqual, 1)
				So(orders["job-0"], ShouldEqual, 2)
			})
		})

		Convey("When moving the last job to position 0", func() {
			_, err := b.ReorderJob(ctx, "job-2", 2, 0)

			Convey("Then the others shift up", func() {
				So(err, ShouldBeNil)
				orders := ordersByID(t, store)
				So(orders["job-2"], ShouldEqual, 0)
				So(orders["job-0"], ShouldEqual, 1)
				So(orders["job-1"], ShouldEqual, 2)
			})
		})

		Convey("When the target position is out of range", func() {
			_, err := b.ReorderJob(ctx, "job-0", 0, 7)

			Convey("Then the request is rejected and nothing moved", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonInvalidRange)
				orders := ordersByID(t, store)
				So(orders["job-0"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a larger board", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedJobs(t, store, 8)

		Convey("When reordering repeatedly", func() {
			_, err := b.ReorderJob(ctx, "job-5", 5, 1)
			So(err, ShouldBeNil)
			_, err = b.ReorderJob(ctx, "job-0", 0, 6)
			So(err, ShouldBeNil)

			Convey("Then orders stay dense and unique", func() {
				orders := ordersByID(t, store)
				seen := make(map[int]bool, len(orders))
				for _, o := range orders {
					So(o, ShouldBeGreaterThanOrEqualTo, 0)
					So(o, ShouldBeLessThan, len(orders))
					So(seen[o], ShouldBeFalse)
					seen[o] = true
				}
			})
		})
	})
}

func TestInjectedFaults(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend that fails every write", t, func() {
		b, store := newBackend(t, failingPolicy())
		seedJobs(t, store, 3)

		Convey("When creating a job", func() {
			_, err := b.CreateJob(ctx, backend.JobDraft{Title: "New Role"})

			Convey("Then the transient error surfaces and nothing was written", func() {
				So(errors.Is(err, backend.ErrTransient), ShouldBeTrue)
				jobs, lerr := store.ListJobs(ctx)
				So(lerr, ShouldBeNil)
				So(len(jobs), ShouldEqual, 3)
			})
		})

		Convey("When reordering", func() {
			_, err := b.ReorderJob(ctx, "job-0", 0, 2)

			Convey("Then the fault fires before any order changed", func() {
				So(errors.Is(err, backend.ErrTransient), ShouldBeTrue)
				orders := ordersByID(t, store)
				So(orders["job-0"], ShouldEqual, 0)
				So(orders["job-1"], ShouldEqual, 1)
				So(orders["job-2"], ShouldEqual, 2)
			})
		})

		Convey("When reading", func() {
			_, err := b.ListJobs(ctx, backend.JobFilter{PageSize: 10})

			Convey("Then reads are never fault-injected", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given two policies with the same seed", t, func() {
		p1 := backend.NewFaultPolicy(backend.WithLatencyRange(0, 0), backend.WithSeed(42))
		p2 := backend.NewFaultPolicy(backend.WithLatencyRange(0, 0), backend.WithSeed(42))
		b1, _ := newBackend(t, p1)
		b2, _ := newBackend(t, p2)

		Convey("When running the same sequence of creates", func() {
			var errs1, errs2 []bool
			for i := 0; i < 20; i++ {
				_, err := b1.CreateJob(ctx, backend.JobDraft{Title: fmt.Sprintf("A %d", i)})
				errs1 = append(errs1, err != nil)
				_, err = b2.CreateJob(ctx, backend.JobDraft{Title: fmt.Sprintf("A %d", i)})
				errs2 = append(errs2, err != nil)
			}

			Convey("Then the fault pattern is identical", func() {
				So(errs1, ShouldResemble, errs2)
			})
		})
	})
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with seeded jobs", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedJobs(t, store, 2)

		Convey("When patching the title", func() {
			title := "Renamed"
			job, err := b.UpdateJob(ctx, "job-0", model.JobPatch{Title: &title})

			Convey("Then only the patched field changes", func() {
				So(err, ShouldBeNil)
				So(job.Title, ShouldEqual, "Renamed")
				So(job.Slug, ShouldEqual, "job-0")
				So(job.Order, ShouldEqual, 0)
			})
		})

		Convey("When patching the slug to one already taken", func() {
			slug := "job-1"
			_, err := b.UpdateJob(ctx, "job-0", model.JobPatch{Slug: &slug})

			Convey("Then the duplicate slug is rejected", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonDuplicateSlug)
			})
		})

		Convey("When patching an unknown job", func() {
			title := "Ghost"
			_, err := b.UpdateJob(ctx, "nope", model.JobPatch{Title: &title})

			Convey("Then not found comes back", func() {
				So(errors.Is(err, backend.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
