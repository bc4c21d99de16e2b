package model

import "time"

type Race struct {
	ID        int       `db:"race_id"`
	Year      int       `db:"year"`
	Round     int       `db:"round"`
	CircuitID int       `db:"circuit_id"`
	Name      string    `db:"name"`
	Date      time.Time `db:"date"`
}

type Circuit struct {
	ID       int    `db:"circuit_id"`
	Name     string `db:"name"`
	Location string `db:"location"`
	Country  string `db:"country"`
}

type Status struct {
	ID     int    `db:"status_id"`
	Status string `db:"status"`
}

// Compare orders races chronologically by (year, round).
func (r Race) Compare(other Race) int {
	if r.Year != other.Year {
		return r.Year - other.Year
	}
	return r.Round - other.Round
}
