package backend_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/talentflow/talentflow/internal/adapters/backend"
	"github.com/talentflow/talentflow/internal/domain/model"
)

func sampleAssessment(jobID string) model.Assessment {
	return model.Assessment{
		ID:    "assess-1",
		JobID: jobID,
		Title: "Screening",
		Sections: []model.Section{
			{ID: "sec-1", AssessmentID: "assess-1", Title: "Basics", Order: 0},
		},
		Questions: []model.Question{
			{ID: "q-1", SectionID: "sec-1", Type: model.QuestionShortText, Label: "Why us?", Order: 0},
			{ID: "q-2", SectionID: "sec-1", Type: model.QuestionNumeric, Label: "Years", Order: 1},
		},
	}
}

func TestAssessmentLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with a seeded job", t, func() {
		b, store := newBackend(t, reliablePolicy())
		seedJobs(t, store, 1)

		Convey("When no assessment exists yet", func() {
			_, err := b.AssessmentForJob(ctx, "job-0")

			Convey("Then not found comes back", func() {
				So(errors.Is(err, backend.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When saving a full tree", func() {
			saved, err := b.SaveAssessment(ctx, "job-0", sampleAssessment("job-0"))

			Convey("Then the tree persists as one unit", func() {
				So(err, ShouldBeNil)
				So(saved.UpdatedAt.IsZero(), ShouldBeFalse)

				got, gerr := b.AssessmentForJob(ctx, "job-0")
				So(gerr, ShouldBeNil)
				So(len(got.Sections), ShouldEqual, 1)
				So(len(got.Questions), ShouldEqual, 2)
				So(got.Questions[1].Type, ShouldEqual, model.QuestionNumeric)
			})

			Convey("And saving again replaces the previous tree", func() {
				next := sampleAssessment("job-0")
				next.Questions = next.Questions[:1]
				_, serr := b.SaveAssessment(ctx, "job-0", next)
				So(serr, ShouldBeNil)

				got, gerr := b.AssessmentForJob(ctx, "job-0")
				So(gerr, ShouldBeNil)
				So(len(got.Questions), ShouldEqual, 1)
			})
		})

		Convey("When submitting a response", func() {
			_, err := b.SaveAssessment(ctx, "job-0", sampleAssessment("job-0"))
			So(err, ShouldBeNil)

			resp, err := b.SubmitResponse(ctx, "job-0", "cand-1", map[string]any{
				"q-1": "growth",
				"q-2": 4,
			})

			Convey("Then the response is stored against the assessment", func() {
				So(err, ShouldBeNil)
				So(resp.ID, ShouldNotBeEmpty)
				So(resp.AssessmentID, ShouldEqual, "assess-1")
				So(resp.SubmittedAt.IsZero(), ShouldBeFalse)

				got, gerr := b.ResponseFor(ctx, "assess-1", "cand-1")
				So(gerr, ShouldBeNil)
				So(got.Answers["q-1"], ShouldEqual, "growth")
			})
		})

		Convey("When submitting for a job with no assessment", func() {
			_, err := b.SubmitResponse(ctx, "job-0", "cand-1", map[string]any{"q-1": "x"})

			Convey("Then not found comes back", func() {
				So(errors.Is(err, backend.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
