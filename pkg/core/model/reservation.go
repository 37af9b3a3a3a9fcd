// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"math"
	"time"
)

// Reservation models a time-bounded claim by one user on one spot.
// It is created in the active state when a spot is booked and moves
// to its terminal closed state when the spot is released, taking a
// leaving timestamp and a computed total cost. A closed reservation
// is kept as history and keeps referencing its spot; it is never
// deleted directly and only goes away if its spot or user is deleted.
// Each user may hold at most one active reservation at a time and
// each spot may be referenced by at most one active reservation.
type Reservation struct {
	ID       int64      // unique reservation identifier
	SpotID   int64      // identifier of the claimed spot
	UserID   int64      // identifier of the owning user
	ParkedAt time.Time  // check-in instant (UTC)
	LeftAt   *time.Time // check-out instant (UTC), nil while active
	Cost     *float64   // total billed cost, nil while active
	Active   bool       // true until the spot is released
}

// ReservationDetail joins a reservation with the display attributes
// of its spot and lot, as required by the dashboard views.
type ReservationDetail struct {
	Reservation

	LotName    string // name of the lot containing the spot
	SpotNumber string // per-lot number of the claimed spot
}

// BilledHours computes the number of billable hours for the given
// elapsed parking duration. Every started hour counts as one billed
// hour and any positive duration bills at least one hour.
// Non-positive durations, which may be observed in presence of a
// clock skew, bill zero hours.
func BilledHours(elapsed time.Duration) int64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	if h := int64(math.Ceil(secs / 3600)); h > 1 {
		return h
	}
	return 1
}

// Bill computes the total cost of parking from parkedAt to leftAt
// with the given hourly price. The cost is the billed hours times
// the hourly price, rounded to two decimal places.
func Bill(parkedAt, leftAt time.Time, pricePerHour float64) float64 {
	hours := BilledHours(leftAt.Sub(parkedAt))
	return math.Round(float64(hours)*pricePerHour*100) / 100
}
