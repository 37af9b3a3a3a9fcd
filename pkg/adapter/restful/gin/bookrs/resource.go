// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookrs realizes the reservations resource, allowing the
// booking, releasing, and dashboard REST APIs to be accepted and
// delegated to the bookings use cases respectively. The authenticated
// user identity of each request selects whose reservations are
// touched; no user may act on the reservations of another user.
package bookrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/middleware"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/usecase/bookuc"
)

type resource struct {
	books *bookuc.UseCase
	loc   *time.Location
}

// Register instantiates a resource adapting the bookings use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/parkweb/v1/dashboard
//     in order to query the user dashboard data.
//  2. POST request to /api/parkweb/v1/reservations
//     in order to book an available spot in a chosen lot.
//  3. PATCH request to /api/parkweb/v1/reservations/:rid
//     in order to release a held spot and bill the elapsed time.
func Register(
	r *gin.RouterGroup, books *bookuc.UseCase, loc *time.Location,
) {
	rs := &resource{books: books, loc: loc}
	r.GET("dashboard", rs.Dashboard)
	r.POST("reservations", rs.Book)
	r.PATCH("reservations/:rid", rs.UpdateReservation)
}

func (rs *resource) Dashboard(c *gin.Context) {
	d, err := rs.books.Dashboard(c, middleware.UserID(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rs.SerDashboard(d))
}

func (rs *resource) Book(c *gin.Context) {
	req := rs.DserBookReq(c)
	if req == nil {
		return
	}
	d, err := rs.books.Book(c, middleware.UserID(c), req.LotID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rs.SerDetail(d))
}

func (rs *resource) UpdateReservation(c *gin.Context) {
	req := rs.DserUpdateReservationReq(c)
	if req == nil {
		return
	}
	switch req.Op {
	case "release":
		d, err := rs.books.Release(c, req.ReservationID, middleware.UserID(c))
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rs.SerDetail(d))
	default:
		panic("unexpected op:" + req.Op)
	}
}
