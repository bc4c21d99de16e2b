package model

import "github.com/aarondl/opt/null"

// Result is the classification of one driver in one race.
// Position is null when the entrant was not classified, Rank holds the
// fastest lap rank if known.
type Result struct {
	ID            int           `db:"result_id"`
	RaceID        int           `db:"race_id"`
	DriverID      int           `db:"driver_id"`
	ConstructorID int           `db:"constructor_id"`
	Grid          int           `db:"grid"`
	Position      null.Val[int] `db:"position"`
	Points        float64       `db:"points"`
	Laps          int           `db:"laps"`
	Rank          null.Val[int] `db:"rank"`
	StatusID      int           `db:"status_id"`
}

// Classified reports whether the result has a finishing position.
func (r Result) Classified() bool {
	return r.Position.IsValue()
}

// FinishedAt reports whether the result is classified at exactly pos.
func (r Result) FinishedAt(pos int) bool {
	p, ok := r.Position.Get()
	return ok && p == pos
}

// FinishedWithin reports whether the result is classified at pos or better.
func (r Result) FinishedWithin(pos int) bool {
	p, ok := r.Position.Get()
	return ok && p <= pos
}

type Qualifying struct {
	ID            int              `db:"qualify_id"`
	RaceID        int              `db:"race_id"`
	DriverID      int              `db:"driver_id"`
	ConstructorID int              `db:"constructor_id"`
	Position      int              `db:"position"`
	Q1            null.Val[string] `db:"q1"`
	Q2            null.Val[string] `db:"q2"`
	Q3            null.Val[string] `db:"q3"`
}
