// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports the
// account related use cases: registration of a new user account,
// authentication of an existing account, and listing accounts for
// the administration views.
package usersuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/hash"
	"github.com/openpark/parkweb/pkg/core/log"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
)

// UseCase represents a users use case. It holds a database connection
// pool, the users repository instance (to be guided with the DB
// pool), and the credential hashing mechanism.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  hash.Hasher
}

// New instantiates a users use case.
func New(p repo.Pool, u repo.Users, h hash.Hasher) *UseCase {
	return &UseCase{pool: p, usersrp: u, hasher: h}
}

// Register use case creates a new account with the user role.
// All three arguments are required and the username and email must
// not collide with an existing account. The created user model,
// including its assigned identifier, is returned.
func (users *UseCase) Register(
	ctx context.Context, username, email, password string,
) (u *model.User, err error) {
	switch {
	case username == "":
		return nil, cerr.Validation(errors.New("username is required"))
	case password == "":
		return nil, cerr.Validation(errors.New("password is required"))
	case email == "":
		return nil, cerr.Validation(errors.New("email is required"))
	}
	h, err := users.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Create(ctx, &model.User{
			Username:     username,
			Email:        email,
			PasswordHash: h,
			Role:         model.RoleUser,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "registered user", log.Int64("user_id", u.ID))
	return u, nil
}

// Authenticate use case verifies the given credentials and returns
// the matching user model. Unknown usernames and wrong passwords are
// reported by the same authentication error, so callers cannot probe
// for existing usernames.
func (users *UseCase) Authenticate(
	ctx context.Context, username, password string,
) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.ByUsername(ctx, username)
		return err
	})
	if err != nil {
		if cerr.KindOf(err) == cerr.KindNotFound {
			return nil, cerr.Authentication(
				errors.New("incorrect username or password"),
			)
		}
		return nil, err
	}
	ok, err := users.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, cerr.Authentication(
			errors.New("incorrect username or password"),
		)
	}
	return u, nil
}

// List use case returns all registered accounts for the
// administration views.
func (users *UseCase) List(ctx context.Context) (
	us []model.User, err error,
) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		us, err = q.List(ctx)
		return err
	})
	if err != nil {
		us = nil
	}
	return
}
