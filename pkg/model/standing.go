package model

// DriverStanding holds the cumulative championship state of a driver
// after the race RaceID.
type DriverStanding struct {
	RaceID   int     `db:"race_id"`
	DriverID int     `db:"driver_id"`
	Points   float64 `db:"points"`
	Position int     `db:"position"`
	Wins     int     `db:"wins"`
}

type ConstructorStanding struct {
	RaceID        int     `db:"race_id"`
	ConstructorID int     `db:"constructor_id"`
	Points        float64 `db:"points"`
	Position      int     `db:"position"`
	Wins          int     `db:"wins"`
}
