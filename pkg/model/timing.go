package model

type PitStop struct {
	RaceID       int `db:"race_id"`
	DriverID     int `db:"driver_id"`
	Stop         int `db:"stop"`
	Lap          int `db:"lap"`
	Milliseconds int `db:"milliseconds"`
}

type LapTime struct {
	RaceID       int `db:"race_id"`
	DriverID     int `db:"driver_id"`
	Lap          int `db:"lap"`
	Position     int `db:"position"`
	Milliseconds int `db:"milliseconds"`
}
