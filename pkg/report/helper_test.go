//nolint:whitespace,lll,funlen // ok for tests
package report

import (
	"context"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/testsupport/basedata"
)

func sample() *dataset.Dataset {
	return basedata.SampleSeason().Build()
}

func optID(v int) omit.Val[int] {
	return omit.From(v)
}

// twoDriverGrid creates count races where driver 1 starts from pole and
// driver 2 from grid 2.
func twoDriverGrid(count int) *basedata.Builder {
	b := basedata.NewBuilder().
		Driver(1, "Pole", "Sitter").
		Driver(2, "Second", "Row").
		Constructor(1, "Team").
		Circuit(1, "Circuit", "Country")
	for i := 1; i <= count; i++ {
		b.Race(i, 2020, i, 1)
	}
	return b
}

var bg = context.Background()
