package model

import "time"

// Lot models a parking facility which contains a set of individually
// reservable spots. MaxSpots counts the spots which currently belong
// to the lot and OccupiedSpots counts those with an Occupied status.
// The 0 <= OccupiedSpots <= MaxSpots relation is maintained by the
// repositories within the same transaction which changes any spot.
type Lot struct {
	ID            int64     // unique lot identifier
	Name          string    // unique lot name (prime location name)
	Address       string    // postal address of the facility
	PinCode       string    // postal PIN code of the facility
	PricePerHour  float64   // non-negative price of one billed hour
	MaxSpots      int       // number of spots belonging to this lot
	OccupiedSpots int       // number of spots with Occupied status
	CreatedAt     time.Time // creation instant (UTC)
	UpdatedAt     time.Time // last modification instant (UTC)
}

// FreeSpots returns the number of spots which may be booked in this
// lot right now.
func (l *Lot) FreeSpots() int {
	return l.MaxSpots - l.OccupiedSpots
}
