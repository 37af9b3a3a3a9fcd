// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt adapts the github.com/golang-jwt/jwt module for issuance
// and verification of the bearer tokens which authenticate the REST
// API requests. Tokens are signed with the HS256 algorithm using a
// shared secret, carry the user identifier as their subject and the
// user role as a custom claim, and expire after a configured duration.
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/model"
)

// Claims contains the verified identity which a bearer token conveys.
type Claims struct {
	UserID int64
	Role   model.Role
}

// Issuer signs and verifies bearer tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// New instantiates an Issuer with the given shared secret and token
// time to live duration. Both must be provided explicitly, as there
// is no safe default for a signing secret.
func New(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must be non-empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl (%v) is not positive", ttl)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

type tokenClaims struct {
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// Issue creates a signed token for the given user identity. Each
// token takes a random UUID as its unique JWT ID.
func (iss *Issuer) Issue(userID int64, role model.Role) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl)),
		},
	})
	signed, err := t.SignedString(iss.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates the given signed token, returning the
// claims which it conveys. Expired, tampered, or otherwise malformed
// tokens are reported as authentication errors.
func (iss *Issuer) Verify(signed string) (*Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(
		signed, &tc,
		func(t *jwt.Token) (any, error) {
			return iss.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, cerr.Authentication(
			fmt.Errorf("parsing token: %w", err),
		)
	}
	userID, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil {
		return nil, cerr.Authentication(
			fmt.Errorf("parsing token subject: %w", err),
		)
	}
	role, err := model.ParseRole(tc.Role)
	if err != nil {
		return nil, cerr.Authentication(
			fmt.Errorf("parsing token role: %w", err),
		)
	}
	return &Claims{UserID: userID, Role: role}, nil
}
