package notes_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/talentflow/talentflow/internal/domain/notes"
)

func TestExtractMentions(t *testing.T) {
	Convey("Given note content with @-mentions", t, func() {
		Convey("When the content names one person", func() {
			got := notes.ExtractMentions("Ping @Jane Doe about the offer")

			Convey("Then the full name is captured", func() {
				So(got, ShouldResemble, []string{"Jane Doe"})
			})
		})

		Convey("When the content names several people", func() {
			got := notes.ExtractMentions("@Jane Doe and @John Smith should sync")

			Convey("Then every mention is captured in order", func() {
				So(got, ShouldResemble, []string{"Jane Doe", "John Smith"})
			})
		})

		Convey("When an @ is not followed by two words", func() {
			got := notes.ExtractMentions("email me @ noon")

			Convey("Then nothing is captured", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the content has no mentions", func() {
			got := notes.ExtractMentions("plain note")

			So(got, ShouldBeEmpty)
		})
	})
}
