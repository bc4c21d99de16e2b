package basedata

// ids used by SampleSeason
const (
	DriverVerstappen = 830
	DriverPerez      = 815
	DriverHamilton   = 1
	DriverRussell    = 847
	ConstructorRBR   = 9
	ConstructorMerc  = 131
	CircuitBahrain   = 3
	CircuitJeddah    = 77
	CircuitMelbourne = 1
)

// SampleSeason returns a three round season with two teams, used by tests
// that need a bit of everything (results, qualifying, pit stops, lap times
// and standings).
//
//nolint:funlen // test data
func SampleSeason() *Builder {
	b := NewBuilder().
		Driver(DriverVerstappen, "Max", "Verstappen").
		Driver(DriverPerez, "Sergio", "Pérez").
		Driver(DriverHamilton, "Lewis", "Hamilton").
		Driver(DriverRussell, "George", "Russell").
		Constructor(ConstructorRBR, "Red Bull").
		Constructor(ConstructorMerc, "Mercedes").
		Circuit(CircuitBahrain, "Bahrain International Circuit", "Bahrain").
		Circuit(CircuitJeddah, "Jeddah Corniche Circuit", "Saudi Arabia").
		Circuit(CircuitMelbourne, "Albert Park Grand Prix Circuit", "Australia").
		Race(1098, 2023, 1, CircuitBahrain).
		Race(1099, 2023, 2, CircuitJeddah).
		Race(1100, 2023, 3, CircuitMelbourne)

	// round 1
	b.Finish(1098, DriverVerstappen, ConstructorRBR, 1, 1, 25).
		Finish(1098, DriverPerez, ConstructorRBR, 2, 2, 18).
		Finish(1098, DriverHamilton, ConstructorMerc, 7, 5, 10).
		Retire(1098, DriverRussell, ConstructorMerc, 6, StatusEngine).
		FastestLap(1098, DriverPerez)
	// round 2
	b.Finish(1099, DriverPerez, ConstructorRBR, 1, 1, 25).
		Finish(1099, DriverVerstappen, ConstructorRBR, 15, 2, 19).
		Finish(1099, DriverRussell, ConstructorMerc, 3, 4, 12).
		Finish(1099, DriverHamilton, ConstructorMerc, 7, 5, 10).
		FastestLap(1099, DriverVerstappen)
	// round 3
	b.Finish(1100, DriverVerstappen, ConstructorRBR, 1, 1, 25).
		Finish(1100, DriverHamilton, ConstructorMerc, 3, 2, 18).
		Lapped(1100, DriverPerez, ConstructorRBR, 0, 5, StatusPlusOneLap).
		Retire(1100, DriverRussell, ConstructorMerc, 2, StatusAccident).
		FastestLap(1100, DriverPerez)

	b.Quali(1098, DriverVerstappen, ConstructorRBR, 1, "1:30.503", "1:29.708", "1:29.708").
		Quali(1098, DriverPerez, ConstructorRBR, 2, "1:30.746", "1:30.079", "1:29.846").
		Quali(1098, DriverRussell, ConstructorMerc, 6, "1:31.057", "1:30.282", "1:30.340").
		Quali(1098, DriverHamilton, ConstructorMerc, 7, "1:30.513", "1:30.472", "1:30.384").
		Quali(1099, DriverPerez, ConstructorRBR, 1, "1:29.244", "1:28.483", "1:28.265").
		Quali(1099, DriverRussell, ConstructorMerc, 3, "1:29.271", "1:28.571", "1:28.857").
		Quali(1099, DriverHamilton, ConstructorMerc, 7, "1:29.148", "1:28.794", "1:29.223").
		Quali(1099, DriverVerstappen, ConstructorRBR, 15, "1:29.226", "", "").
		Quali(1100, DriverVerstappen, ConstructorRBR, 1, "1:17.384", "1:17.056", "1:16.732").
		Quali(1100, DriverRussell, ConstructorMerc, 2, "1:17.654", "1:17.187", "1:16.968").
		Quali(1100, DriverHamilton, ConstructorMerc, 3, "1:17.901", "1:17.227", "1:17.104").
		Quali(1100, DriverPerez, ConstructorRBR, 20, "", "", "")

	b.Pit(1098, DriverVerstappen, 1, 14, 24100).
		Pit(1098, DriverVerstappen, 2, 36, 23500).
		Pit(1098, DriverPerez, 1, 16, 24300).
		Pit(1098, DriverPerez, 2, 37, 24000).
		Pit(1098, DriverHamilton, 1, 12, 25300).
		Pit(1099, DriverPerez, 1, 17, 22400).
		Pit(1099, DriverVerstappen, 1, 17, 22100).
		Pit(1099, DriverRussell, 1, 17, 22900).
		Pit(1099, DriverHamilton, 1, 17, 23000).
		Pit(1100, DriverVerstappen, 1, 8, 21100).
		Pit(1100, DriverHamilton, 1, 8, 21600).
		Pit(1100, DriverPerez, 1, 2, 45200)

	b.Lap(1098, DriverVerstappen, 1, 1, 99019).
		Lap(1098, DriverVerstappen, 2, 1, 97780).
		Lap(1098, DriverPerez, 1, 2, 99900).
		Lap(1098, DriverPerez, 2, 2, 98100).
		Lap(1099, DriverPerez, 1, 1, 95000).
		Lap(1099, DriverVerstappen, 1, 9, 97000).
		Lap(1099, DriverVerstappen, 2, 1, 94000)

	b.DriverStanding(1098, DriverVerstappen, 25, 1, 1).
		DriverStanding(1098, DriverPerez, 18, 2, 0).
		DriverStanding(1098, DriverHamilton, 10, 3, 0).
		DriverStanding(1098, DriverRussell, 0, 4, 0).
		DriverStanding(1099, DriverVerstappen, 44, 1, 1).
		DriverStanding(1099, DriverPerez, 43, 2, 1).
		DriverStanding(1099, DriverHamilton, 20, 3, 0).
		DriverStanding(1099, DriverRussell, 12, 4, 0).
		DriverStanding(1100, DriverVerstappen, 69, 1, 2).
		DriverStanding(1100, DriverPerez, 43, 2, 1).
		DriverStanding(1100, DriverHamilton, 38, 3, 0).
		DriverStanding(1100, DriverRussell, 12, 4, 0)

	b.ConstructorStanding(1098, ConstructorRBR, 43, 1, 1).
		ConstructorStanding(1098, ConstructorMerc, 10, 2, 0).
		ConstructorStanding(1099, ConstructorRBR, 87, 1, 2).
		ConstructorStanding(1099, ConstructorMerc, 32, 2, 0).
		ConstructorStanding(1100, ConstructorRBR, 112, 1, 3).
		ConstructorStanding(1100, ConstructorMerc, 50, 2, 0)
	return b
}
