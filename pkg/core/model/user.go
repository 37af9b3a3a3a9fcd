// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Closed enums, such as Role and SpotStatus, are declared as numeric
// types with their own Validate, String, and Parse functions, so
// invalid states cannot pass through the adapter layer silently.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Role specifies the user role enum. Although this enum is numeric,
// it is (de)serialized as a string for readability in the adapter
// layer and in the database rows.
type Role int

// Valid values for the Role enum.
const (
	RoleInvalid Role = iota // zero value is invalid

	RoleUser  // a normal user who can book and release spots
	RoleAdmin // an administrator who manages lots and spots
)

// ErrUnknownRole indicates that a given string may not be parsed as
// a valid/known user role. The caller of ParseRole knows about the
// invalid role string itself, so it is not encoded in this error.
var ErrUnknownRole = errors.New("unknown user role")

// RoleError indicates an invalid role value, containing the invalid
// role as an integer.
type RoleError int

// Error implements the error interface, returning a string
// representation of the RoleError.
func (e RoleError) Error() string {
	return fmt.Sprintf("invalid user role: %d", int(e))
}

// Validate returns nil if Role value is valid. For invalid values,
// an instance of the RoleError will be returned.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin:
		return nil
	default:
		return RoleError(r)
	}
}

// String converts the Role enum to a string, helping to serialize it
// for transmission to web clients and storage in the database.
// Invalid role causes a panic.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		panic(RoleError(r))
	}
}

// ParseRole parses the given string and returns a Role, helping to
// deserialize it when reading a REST API request or a database row.
// For invalid strings, RoleInvalid and ErrUnknownRole will be
// returned.
func ParseRole(r string) (Role, error) {
	switch r {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleInvalid, ErrUnknownRole
	}
}

// User models a registered account which may be persisted in a
// database. The password itself is never kept; only its hash as
// computed by the configured hashing mechanism.
type User struct {
	ID           int64     // unique user identifier
	Username     string    // unique login name
	Email        string    // unique contact email address
	PasswordHash string    // hashed credential, never the plaintext
	Role         Role      // user or admin, fixed at creation
	CreatedAt    time.Time // registration instant (UTC)
}
