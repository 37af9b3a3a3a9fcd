// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package hash exports the expected interface for the user credential
// hashing mechanisms. For the corresponding implementations, check
// the adapter layer (the bcrypt and scram packages).
//
// Interfaces should be defined based on the use cases requirements.
// The registration use case needs to obtain a one-way hash of a given
// password, so the plaintext is never persisted, and the login use
// case needs to verify a candidate password against a previously
// stored hash. The stored hash string is expected to be
// self-describing, embedding the mechanism parameters (such as the
// salt and cost or iterations count), so verification requires no
// side information beyond the stored string itself.
package hash

// Hasher represents the expectations from a password hashing
// mechanism implementation.
type Hasher interface {
	// Hash computes a self-describing hash string for the given
	// password, so it can be stored and used later for verification.
	// The pass argument must be non-empty.
	Hash(pass string) (string, error)

	// Verify checks the given candidate password against a hash
	// string which was previously returned by the Hash method of the
	// same mechanism. It returns true if they match, false if they
	// do not, and a non-nil error when the stored hash string cannot
	// be parsed by this mechanism.
	Verify(pass, hashed string) (bool, error)
}
