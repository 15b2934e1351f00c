package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/talentflow/talentflow/internal/domain/model"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	Convey("Given a slice of seven items", t, func() {
		Convey("When taking page 1 of size 3", func() {
			page := model.Paginate(items, 1, 3)

			So(page.Data, ShouldResemble, []int{1, 2, 3})
			So(page.Total, ShouldEqual, 7)
			So(page.TotalPages, ShouldEqual, 3)
		})

		Convey("When taking the ragged last page", func() {
			page := model.Paginate(items, 3, 3)

			So(page.Data, ShouldResemble, []int{7})
			So(page.Page, ShouldEqual, 3)
		})

		Convey("When the page is past the end", func() {
			page := model.Paginate(items, 9, 3)

			So(page.Data, ShouldBeEmpty)
			So(page.Total, ShouldEqual, 7)
		})

		Convey("When the page number is below one", func() {
			page := model.Paginate(items, 0, 3)

			So(page.Data, ShouldResemble, []int{1, 2, 3})
			So(page.Page, ShouldEqual, 1)
		})
	})
}

func TestSlugify(t *testing.T) {
	Convey("Given assorted titles", t, func() {
		cases := map[string]string{
			"Senior Frontend Developer": "senior-frontend-developer",
			"C++ / Rust Engineer":       "c-rust-engineer",
			"  padded  title  ":         "padded-title",
			"Already-Slugged":           "already-slugged",
		}
		for in, want := range cases {
			So(model.Slugify(in), ShouldEqual, want)
		}
	})
}
