package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/adapters/client"
	"github.com/talentflow/talentflow/internal/adapters/http/api"
	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, repository.Store) {
	t.Helper()
	store, err := repository.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	policy := backend.NewFaultPolicy(
		backend.WithLatencyRange(0, 0),
		backend.WithWriteFailureRate(0),
		backend.WithReorderFailureRate(0),
	)
	c := client.New(backend.New(store, backend.WithFaultPolicy(policy)))

	mux := http.NewServeMux()
	api.NewServer(c).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func seedJobs(t *testing.T, store repository.Store, n int) {
	t.Helper()
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		err := store.CreateJob(context.Background(), model.Job{
			ID:        fmt.Sprintf("job-%d", i),
			Title:     fmt.Sprintf("Job %d", i),
			Slug:      fmt.Sprintf("job-%d", i),
			Status:    model.JobActive,
			Order:     i,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out.Bytes()
}

func TestJobsRoutes(t *testing.T) {
	Convey("Given a server with three seeded jobs", t, func() {
		srv, store := newTestServer(t)
		seedJobs(t, store, 3)

		Convey("When listing jobs", func() {
			resp, body := doJSON(t, http.MethodGet, srv.URL+"/jobs?pageSize=2", nil)

			Convey("Then the page envelope comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var page model.Page[model.Job]
				So(json.Unmarshal(body, &page), ShouldBeNil)
				So(page.Total, ShouldEqual, 3)
				So(len(page.Data), ShouldEqual, 2)
			})
		})

		Convey("When fetching one job", func() {
			resp, body := doJSON(t, http.MethodGet, srv.URL+"/jobs/job-1", nil)

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var job model.Job
			So(json.Unmarshal(body, &job), ShouldBeNil)
			So(job.Slug, ShouldEqual, "job-1")
		})

		Convey("When fetching a missing job", func() {
			resp, _ := doJSON(t, http.MethodGet, srv.URL+"/jobs/ghost", nil)

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When creating a job", func() {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/jobs", map[string]any{
				"title": "Data Engineer",
				"tags":  []string{"remote"},
			})

			Convey("Then 201 comes back with the derived slug and next order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var job model.Job
				So(json.Unmarshal(body, &job), ShouldBeNil)
				So(job.Slug, ShouldEqual, "data-engineer")
				So(job.Order, ShouldEqual, 3)
			})
		})

		Convey("When creating a job without a title", func() {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/jobs", map[string]any{"title": ""})

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When patching a job", func() {
			resp, body := doJSON(t, http.MethodPatch, srv.URL+"/jobs/job-0", map[string]any{
				"title": "Renamed",
			})

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var job model.Job
			So(json.Unmarshal(body, &job), ShouldBeNil)
			So(job.Title, ShouldEqual, "Renamed")
		})

		Convey("When reordering a job", func() {
			resp, body := doJSON(t, http.MethodPatch, srv.URL+"/jobs/job-0/reorder", map[string]any{
				"fromOrder": 0,
				"toOrder":   2,
			})

			Convey("Then the moved job lands at the target order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var job model.Job
				So(json.Unmarshal(body, &job), ShouldBeNil)
				So(job.Order, ShouldEqual, 2)
			})
		})

		Convey("When reordering out of range", func() {
			resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/jobs/job-0/reorder", map[string]any{
				"fromOrder": 0,
				"toOrder":   9,
			})

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCandidatesRoutes(t *testing.T) {
	Convey("Given a server with one candidate", t, func() {
		srv, store := newTestServer(t)
		now := time.Now().UTC()
		err := store.CreateCandidate(context.Background(), model.Candidate{
			ID: "cand-1", Name: "Dana Smith", Email: "dana@example.com",
			Stage: model.StageApplied, JobID: "job-0", AppliedAt: now, UpdatedAt: now,
		})
		So(err, ShouldBeNil)

		Convey("When changing the stage via PATCH", func() {
			resp, body := doJSON(t, http.MethodPatch, srv.URL+"/candidates/cand-1", map[string]any{
				"stage": "screen",
			})

			Convey("Then the candidate moves and the timeline records it", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var c model.Candidate
				So(json.Unmarshal(body, &c), ShouldBeNil)
				So(c.Stage, ShouldEqual, model.StageScreen)

				tresp, tbody := doJSON(t, http.MethodGet, srv.URL+"/candidates/cand-1/timeline", nil)
				So(tresp.StatusCode, ShouldEqual, http.StatusOK)
				var entries []model.TimelineEntry
				So(json.Unmarshal(tbody, &entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
				So(entries[0].ToStage, ShouldEqual, model.StageScreen)
			})
		})

		Convey("When patching with an invalid stage", func() {
			resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/candidates/cand-1", map[string]any{
				"stage": "limbo",
			})

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When adding and listing notes", func() {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/candidates/cand-1/notes", map[string]any{
				"content": "Talk to @Jane Doe first",
			})

			Convey("Then the note is created with extracted mentions", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var note model.Note
				So(json.Unmarshal(body, &note), ShouldBeNil)
				So(note.Mentions, ShouldResemble, []string{"Jane Doe"})

				lresp, lbody := doJSON(t, http.MethodGet, srv.URL+"/candidates/cand-1/notes", nil)
				So(lresp.StatusCode, ShouldEqual, http.StatusOK)
				var ns []model.Note
				So(json.Unmarshal(lbody, &ns), ShouldBeNil)
				So(len(ns), ShouldEqual, 1)
			})
		})

		Convey("When adding an empty note", func() {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/candidates/cand-1/notes", map[string]any{
				"content": "  ",
			})

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAssessmentsRoutes(t *testing.T) {
	Convey("Given a server with a seeded job", t, func() {
		srv, store := newTestServer(t)
		seedJobs(t, store, 1)

		tree := model.Assessment{
			ID:    "assess-1",
			JobID: "job-0",
			Title: "Screening",
			Sections: []model.Section{
				{ID: "sec-1", AssessmentID: "assess-1", Title: "Basics", Order: 0},
			},
			Questions: []model.Question{
				{ID: "q-1", SectionID: "sec-1", Type: model.QuestionShortText, Label: "Why?", Order: 0},
			},
		}

		Convey("When no assessment exists", func() {
			resp, _ := doJSON(t, http.MethodGet, srv.URL+"/assessments/job-0", nil)

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When putting and fetching the tree", func() {
			resp, _ := doJSON(t, http.MethodPut, srv.URL+"/assessments/job-0", tree)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			gresp, gbody := doJSON(t, http.MethodGet, srv.URL+"/assessments/job-0", nil)
			So(gresp.StatusCode, ShouldEqual, http.StatusOK)
			var got model.Assessment
			So(json.Unmarshal(gbody, &got), ShouldBeNil)
			So(len(got.Questions), ShouldEqual, 1)
		})

		Convey("When submitting a response", func() {
			_, _ = doJSON(t, http.MethodPut, srv.URL+"/assessments/job-0", tree)

			resp, body := doJSON(t, http.MethodPost, srv.URL+"/assessments/job-0/submit", map[string]any{
				"candidateId": "cand-1",
				"answers":     map[string]any{"q-1": "growth"},
			})

			Convey("Then 201 comes back with the stored response", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var r model.AssessmentResponse
				So(json.Unmarshal(body, &r), ShouldBeNil)
				So(r.AssessmentID, ShouldEqual, "assess-1")
			})
		})

		Convey("When submitting without a candidate id", func() {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/assessments/job-0/submit", map[string]any{
				"answers": map[string]any{"q-1": "x"},
			})

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}
