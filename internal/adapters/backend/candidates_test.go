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
)

func seedCandidates(t *testing.T, store repository.Store, n int) []model.Candidate {
	t.Helper()
	now := time.Now().UTC()
	cs := make([]model.Candidate, 0, n)
	for i := 0; i < n; i++ {
		c := model.Candidate{
			ID:        fmt.Sprintf("cand-%d", i),
			Name:      fmt.Sprintf("Person %d", i),
			Email:     fmt.Sprintf("person%d@example.com", i),
			Stage:     model.StageApplied,
			JobID:     "job-0",
			AppliedAt: now,
			UpdatedAt: now,
		}
		cs = append(cs, c)
	}
	if err := store.CreateCandidates(context.Background(), cs); err != nil {
		t.Fatalf("seed candidates: %v", err)
	}
	return cs
}

func TestUpdateCandidateStage(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with one candidate in applied", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedCandidates(t, store, 1)

		Convey("When moving the candidate to screen", func() {
			stage := model.StageScreen
			c, err := b.UpdateCandidate(ctx, "cand-0", model.CandidatePatch{Stage: &stage})

			Convey("Then the stage changes and exactly one timeline entry appears", func() {
				So(err, ShouldBeNil)
				So(c.Stage, ShouldEqual, model.StageScreen)

				entries, terr := store.TimelineFor(ctx, "cand-0")
				So(terr, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
				So(entries[0].FromStage, ShouldNotBeNil)
				So(*entries[0].FromStage, ShouldEqual, model.StageApplied)
				So(entries[0].ToStage, ShouldEqual, model.StageScreen)
			})
		})

		Convey("When patching only the phone", func() {
			phone := "+1 555 0100"
			c, err := b.UpdateCandidate(ctx, "cand-0", model.CandidatePatch{Phone: &phone})

			Convey("Then no timeline entry is synthesized", func() {
				So(err, ShouldBeNil)
				So(c.Phone, ShouldEqual, phone)
				entries, terr := store.TimelineFor(ctx, "cand-0")
				So(terr, ShouldBeNil)
				So(len(entries), ShouldEqual, 0)
			})
		})

		Convey("When patching the stage to an unknown value", func() {
			bad := model.Stage("limbo")
			_, err := b.UpdateCandidate(ctx, "cand-0", model.CandidatePatch{Stage: &bad})

			Convey("Then the request is rejected deterministically", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonInvalidStage)
			})
		})

		Convey("When the write fault fires", func() {
			fb := backend.New(store, backend.WithFaultPolicy(failingPolicy()))
			stage := model.StageTech
			_, err := fb.UpdateCandidate(ctx, "cand-0", model.CandidatePatch{Stage: &stage})

			Convey("Then neither the candidate nor the timeline changed", func() {
				So(errors.Is(err, backend.ErrTransient), ShouldBeTrue)
				c, gerr := store.GetCandidate(ctx, "cand-0")
				So(gerr, ShouldBeNil)
				So(c.Stage, ShouldEqual, model.StageApplied)
				entries, terr := store.TimelineFor(ctx, "cand-0")
				So(terr, ShouldBeNil)
				So(len(entries), ShouldEqual, 0)
			})
		})
	})
}

func TestListCandidates(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with a pool of candidates", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedCandidates(t, store, 60)

		Convey("When listing with defaults", func() {
			page, err := b.ListCandidates(ctx, backend.CandidateFilter{})

			Convey("Then the default page size applies", func() {
				So(err, ShouldBeNil)
				So(len(page.Data), ShouldEqual, 50)
				So(page.Total, ShouldEqual, 60)
				So(page.TotalPages, ShouldEqual, 2)
			})
		})

		Convey("When searching by email substring", func() {
			page, err := b.ListCandidates(ctx, backend.CandidateFilter{Search: "person7@", PageSize: 10})

			Convey("Then only the matching candidate comes back", func() {
				So(err, ShouldBeNil)
				So(len(page.Data), ShouldEqual, 1)
				So(page.Data[0].ID, ShouldEqual, "cand-7")
			})
		})

		Convey("When filtering by stage", func() {
			stage := model.StageOffer
			_, err := b.UpdateCandidate(ctx, "cand-3", model.CandidatePatch{Stage: &stage})
			So(err, ShouldBeNil)

			page, err := b.ListCandidates(ctx, backend.CandidateFilter{Stage: model.StageOffer, PageSize: 10})

			Convey("Then only candidates in that stage come back", func() {
				So(err, ShouldBeNil)
				So(len(page.Data), ShouldEqual, 1)
				So(page.Data[0].ID, ShouldEqual, "cand-3")
			})
		})
	})
}

func TestNotes(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with one candidate", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedCandidates(t, store, 1)

		Convey("When adding a note with mentions", func() {
			note, err := b.AddNote(ctx, "cand-0", "Loop in @Jane Doe before the call", []string{"Jane Doe"})

			Convey("Then the note is stored with its mentions", func() {
				So(err, ShouldBeNil)
				So(note.ID, ShouldNotBeEmpty)
				So(note.Mentions, ShouldResemble, []string{"Jane Doe"})
			})
		})

		Convey("When adding an empty note", func() {
			_, err := b.AddNote(ctx, "cand-0", "   ", nil)

			Convey("Then the note is rejected", func() {
				ve, ok := backend.AsValidation(err)
				So(ok, ShouldBeTrue)
				So(ve.Reason, ShouldEqual, backend.ReasonEmptyContent)
			})
		})

		Convey("When adding several notes", func() {
			for i := 0; i < 3; i++ {
				_, err := b.AddNote(ctx, "cand-0", fmt.Sprintf("note %d", i), nil)
				So(err, ShouldBeNil)
				time.Sleep(2 * time.Millisecond)
			}

			Convey("Then they come back newest first", func() {
				ns, err := b.Notes(ctx, "cand-0")
				So(err, ShouldBeNil)
				So(len(ns), ShouldEqual, 3)
				So(ns[0].Content, ShouldEqual, "note 2")
				So(ns[2].Content, ShouldEqual, "note 0")
			})
		})

		Convey("When adding a note for an unknown candidate", func() {
			_, err := b.AddNote(ctx, "ghost", "hello", nil)

			Convey("Then not found comes back", func() {
				So(errors.Is(err, backend.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
