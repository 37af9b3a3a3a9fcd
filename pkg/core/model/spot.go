// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// SpotStatus specifies the parking spot status enum. Although this
// enum is numeric, it is (de)serialized as a string for readability
// in the adapter layer and in the database rows.
// A spot cycles between the Available and Occupied statuses; there is
// no terminal status.
type SpotStatus int

// Valid values for the SpotStatus enum.
const (
	SpotStatusInvalid SpotStatus = iota // zero value is invalid

	SpotAvailable // spot may be booked
	SpotOccupied  // spot is referenced by exactly one active reservation
)

// ErrUnknownSpotStatus indicates that a given string may not be
// parsed as a valid/known spot status. The caller of ParseSpotStatus
// knows about the invalid status string itself, so it is not encoded
// in this error.
var ErrUnknownSpotStatus = errors.New("unknown spot status")

// SpotStatusError indicates an invalid spot status value, containing
// the invalid status as an integer.
type SpotStatusError int

// Error implements the error interface, returning a string
// representation of the SpotStatusError.
func (e SpotStatusError) Error() string {
	return fmt.Sprintf("invalid spot status: %d", int(e))
}

// Validate returns nil if SpotStatus value is valid. For invalid
// values, an instance of the SpotStatusError will be returned.
func (s SpotStatus) Validate() error {
	switch s {
	case SpotAvailable, SpotOccupied:
		return nil
	default:
		return SpotStatusError(s)
	}
}

// String converts the SpotStatus enum to a string, helping to
// serialize it for transmission to web clients and storage in the
// database. Invalid status causes a panic.
func (s SpotStatus) String() string {
	switch s {
	case SpotAvailable:
		return "Available"
	case SpotOccupied:
		return "Occupied"
	default:
		panic(SpotStatusError(s))
	}
}

// ParseSpotStatus parses the given string and returns a SpotStatus,
// helping to deserialize it when reading a REST API request or a
// database row. For invalid strings, SpotStatusInvalid and
// ErrUnknownSpotStatus will be returned.
func ParseSpotStatus(s string) (SpotStatus, error) {
	switch s {
	case "Available":
		return SpotAvailable, nil
	case "Occupied":
		return SpotOccupied, nil
	default:
		return SpotStatusInvalid, ErrUnknownSpotStatus
	}
}

// Spot models one reservable unit within a lot. Spot numbers, such as
// S1 or S12, are unique within their owning lot, but must be treated
// as opaque identifiers. They are assigned sequentially when a lot is
// created, while individual additions and deletions may leave gaps
// which are never refilled.
type Spot struct {
	ID     int64      // unique spot identifier
	LotID  int64      // identifier of the owning lot
	Number string     // per-lot unique spot number, e.g., S1
	Status SpotStatus // Available or Occupied
}
