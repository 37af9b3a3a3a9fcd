// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the accounts resource, allowing the
// registration and login REST APIs to be accepted and delegated to
// the users use cases respectively. It also exposes the accounts
// listing API for administrators.
package usersrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openpark/parkweb/pkg/adapter/auth/jwt"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/usecase/usersuc"
)

type resource struct {
	users  *usersuc.UseCase
	tokens *jwt.Issuer
	loc    *time.Location
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/parkweb/v1/auth/register
//     in order to create a new account with the user role.
//  2. POST request to /api/parkweb/v1/auth/login
//     in order to verify credentials and obtain a bearer token.
func Register(
	r *gin.RouterGroup,
	users *usersuc.UseCase, tokens *jwt.Issuer, loc *time.Location,
) {
	rs := &resource{users: users, tokens: tokens, loc: loc}
	r.POST("auth/register", rs.RegisterUser)
	r.POST("auth/login", rs.Login)
}

// RegisterAdmin instantiates a resource adapting the users use case
// instance with the administration REST APIs including:
//  1. GET request to /api/parkweb/v1/admin/users
//     in order to list all registered accounts.
func RegisterAdmin(
	r *gin.RouterGroup, users *usersuc.UseCase, loc *time.Location,
) {
	rs := &resource{users: users, loc: loc}
	r.GET("users", rs.ListUsers)
}

func (rs *resource) RegisterUser(c *gin.Context) {
	req := rs.DserRegisterReq(c)
	if req == nil {
		return
	}
	u, err := rs.users.Register(c, req.Username, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rs.SerUser(u))
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	u, err := rs.users.Authenticate(c, req.Username, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	token, err := rs.tokens.Issue(u.ID, u.Role)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  rs.SerUser(u),
	})
}

func (rs *resource) ListUsers(c *gin.Context) {
	us, err := rs.users.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rs.SerUsers(us))
}
