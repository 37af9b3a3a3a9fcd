// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/openpark/parkweb/pkg/adapter/config"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/lotsrp"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/resrvrp"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/spotsrp"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/usersrp"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/bookrs"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/lotsrs"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/middleware"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/usersrs"
	"github.com/openpark/parkweb/pkg/core/repo"
	"github.com/openpark/parkweb/pkg/core/usecase/bookuc"
	"github.com/openpark/parkweb/pkg/core/usecase/lotsuc"
	"github.com/openpark/parkweb/pkg/core/usecase/usersuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like bookuc and each repository package is named like lotsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like bookrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
//
// The registration and login APIs are open; all other APIs sit behind
// the bearer token authentication middleware and the administration
// APIs additionally require the admin role.
//
// The bookOpts options are forwarded to the bookings use case, so
// tests can control its clock. Possible errors will be returned after
// possible wrapping.
func Register(
	e *gin.Engine, p repo.Pool, c *config.Config,
	bookOpts ...bookuc.Option,
) error {
	usersRepo := usersrp.New()
	lotsRepo := lotsrp.New()
	spotsRepo := spotsrp.New()
	resrvRepo := resrvrp.New()

	usersUseCase := usersuc.New(p, usersRepo, c.Auth.NewHasher())
	lotsUseCase := lotsuc.New(p, lotsRepo, spotsRepo, resrvRepo)
	booksUseCase, err := bookuc.New(
		p, lotsRepo, spotsRepo, resrvRepo, bookOpts...,
	)
	if err != nil {
		return fmt.Errorf("creating bookings use case: %w", err)
	}

	tokens, err := c.Auth.NewTokenIssuer()
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}
	loc := c.Gin.Location()

	r := e.Group("/api/parkweb/v1")
	usersrs.Register(r, usersUseCase, tokens, loc)

	authed := r.Group("", middleware.Authenticate(tokens))
	bookrs.Register(authed, booksUseCase, loc)

	admin := authed.Group("admin", middleware.RequireAdmin())
	lotsrs.Register(admin, lotsUseCase)
	usersrs.RegisterAdmin(admin, usersUseCase, loc)
	return nil
}
