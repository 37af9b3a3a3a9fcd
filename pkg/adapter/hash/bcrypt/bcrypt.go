// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bcrypt adapts the golang.org/x/crypto/bcrypt key derivation
// function to the core hash.Hasher interface. The produced hash
// strings embed the bcrypt version, cost, and salt, so they can be
// verified later without any side information.
// This is the default credential hashing mechanism; see the sibling
// scram package for the alternative mechanisms.
package bcrypt

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher computes and verifies bcrypt hash strings with a fixed cost.
//
// It implements the github.com/openpark/parkweb/pkg/core/hash.Hasher
// interface, so it may be used in the use cases layer without any
// dependency on the actual implementation.
type Hasher struct {
	cost int
}

// New returns a new Hasher instance using the default bcrypt cost.
func New() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash computes a bcrypt hash string for the given password.
// The pass argument must be non-empty.
func (h *Hasher) Hash(pass string) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), h.cost)
	if err != nil {
		return "", fmt.Errorf("deriving bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

// Verify checks the given candidate password against a stored bcrypt
// hash string. A mismatching password is not an error; only a hash
// string which cannot be parsed as bcrypt output is.
func (h *Hasher) Verify(pass, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pass))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("parsing bcrypt hash: %w", err)
	}
}
