package models

import "time"

// RideDateLayout is the DD.MM.YYYY form the search page expects.
const RideDateLayout = "02.01.2006"

type Itinerary struct {
	DepartureCity string
	ArrivalCity   string
	RideDate      time.Time
	Adults        int
	// Connection is the 1-based position among direct-route results.
	Connection int
}

func (i Itinerary) RideDateString() string {
	return i.RideDate.Format(RideDateLayout)
}
