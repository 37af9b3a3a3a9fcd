// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of SCRAM-SHA-256 and
// SCRAM-SHA-1 mechanisms. See the SHA256 and SHA1 functions for their
// instantiation logic. When a mechanism for a specific underlying hash
// function is instantiated, it can be used for generation and
// verification of hash strings in the SCRAM standard format.
// This format is also known as the scram encrypted password format,
// however, it may not be reversed (so no encryption/decryption is
// taking place).
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// The RFC 5802 requires at least 4096 iterations while the RFC 7677
// recommends 15000 or more.
const defaultIters = 15000

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) having a fixed underlying hash algorithm.
//
// It implements the github.com/openpark/parkweb/pkg/core/hash.Hasher
// interface, so it may be used in the use cases layer without any
// dependency on the actual implementation. This package relies on
// the github.com/xdg-go/scram module for the SCRAM implementation.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string following the standard scram hash
// format, so it can be stored and used later for verification.
//
// The pass argument must be non-empty. The given password will be
// normalized according to the SASLprep profile (defined by RFC 4013)
// of the stringprep algorithm (which is defined by RFC 3454) and any
// failure in that normalization returns an error. A random salt is
// generated for each call and the iterations count is fixed at 15000.
//
// In absence of errors, a hashed string will be returned which
// conforms to the following format.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// This string consists only of ASCII printable letters, so it can be
// safely stored in a text column.
func (m *Mechanism) Hash(pass string) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	saltBytes := make([]byte, m.outLen)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	salt := base64.StdEncoding.EncodeToString(saltBytes)
	sc, err := m.storedCredentials(pass, salt, defaultIters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	h := fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		defaultIters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
	return h, nil
}

// Verify checks the given candidate password against a stored scram
// hash string by recomputing the stored and server keys with the salt
// and iterations count which are embedded in that string. A hash
// string which was produced by another mechanism (or is malformed)
// cannot be verified and returns an error.
func (m *Mechanism) Verify(pass, hashed string) (bool, error) {
	name, iters, salt, storedKey, serverKey, err := parse(hashed)
	if err != nil {
		return false, err
	}
	if name != m.name {
		return false, fmt.Errorf(
			"hash mechanism is %q, not %q", name, m.name,
		)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return false, fmt.Errorf("obtaining stored credentials: %w", err)
	}
	ok := subtle.ConstantTimeCompare(sc.StoredKey, storedKey) == 1 &&
		subtle.ConstantTimeCompare(sc.ServerKey, serverKey) == 1
	return ok, nil
}

func parse(hashed string) (
	name string, iters int, salt string,
	storedKey, serverKey []byte, err error,
) {
	parts := strings.Split(hashed, "$")
	if len(parts) != 3 {
		err = fmt.Errorf("expected 3 parts, but got %d", len(parts))
		return
	}
	name = parts[0]
	itersStr, salt, ok := strings.Cut(parts[1], ":")
	if !ok {
		err = errors.New("missing salt")
		return
	}
	iters, err = strconv.Atoi(itersStr)
	if err != nil {
		err = fmt.Errorf("parsing iterations count: %w", err)
		return
	}
	storedStr, serverStr, ok := strings.Cut(parts[2], ":")
	if !ok {
		err = errors.New("missing server key")
		return
	}
	storedKey, err = base64.StdEncoding.DecodeString(storedStr)
	if err != nil {
		err = fmt.Errorf("decoding base64 stored key: %w", err)
		return
	}
	serverKey, err = base64.StdEncoding.DecodeString(serverStr)
	if err != nil {
		err = fmt.Errorf("decoding base64 server key: %w", err)
	}
	return
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
