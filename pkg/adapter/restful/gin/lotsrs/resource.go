// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsrs realizes the parking lots administration resource,
// allowing the lot and spot manipulation REST APIs to be accepted and
// delegated to the lots use cases respectively.
package lotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/usecase/lotsuc"
)

type resource struct {
	lots *lotsuc.UseCase
}

// Register instantiates a resource adapting the lots use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/parkweb/v1/admin/lots
//     in order to list all lots with their counters.
//  2. POST request to /api/parkweb/v1/admin/lots
//     in order to create a lot with its initial spots.
//  3. PUT request to /api/parkweb/v1/admin/lots/:lid
//     in order to edit the descriptive fields of a lot.
//  4. DELETE request to /api/parkweb/v1/admin/lots/:lid
//     in order to delete a lot without parked vehicles.
//  5. GET request to /api/parkweb/v1/admin/lots/:lid/spots
//     in order to list the spots of one lot.
//  6. POST request to /api/parkweb/v1/admin/lots/:lid/spots
//     in order to add one spot to a lot.
//  7. PATCH request to /api/parkweb/v1/admin/spots/:sid
//     in order to rename a spot or override its status.
//  8. DELETE request to /api/parkweb/v1/admin/spots/:sid
//     in order to delete a spot without an active reservation.
//  9. GET request to /api/parkweb/v1/admin/overview
//     in order to query the aggregate counters of all lots.
func Register(r *gin.RouterGroup, lots *lotsuc.UseCase) {
	rs := &resource{lots: lots}
	r.GET("lots", rs.ListLots)
	r.POST("lots", rs.AddLot)
	r.PUT("lots/:lid", rs.EditLot)
	r.DELETE("lots/:lid", rs.DeleteLot)
	r.GET("lots/:lid/spots", rs.ListSpots)
	r.POST("lots/:lid/spots", rs.AddSpot)
	r.PATCH("spots/:sid", rs.EditSpot)
	r.DELETE("spots/:sid", rs.DeleteSpot)
	r.GET("overview", rs.Overview)
}

func (rs *resource) ListLots(c *gin.Context) {
	ls, err := rs.lots.Lots(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serLots(ls))
}

func (rs *resource) AddLot(c *gin.Context) {
	req := rs.DserLotReq(c)
	if req == nil {
		return
	}
	l, err := rs.lots.AddLot(
		c, req.Name, req.Address, req.PinCode,
		*req.PricePerHour, req.MaxSpots,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSerLot(l))
}

func (rs *resource) EditLot(c *gin.Context) {
	lid, ok := serdser.PathID(c, "lid")
	if !ok {
		return
	}
	req := rs.DserEditLotReq(c)
	if req == nil {
		return
	}
	l, err := rs.lots.EditLot(
		c, lid, req.Name, req.Address, req.PinCode, *req.PricePerHour,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newSerLot(l))
}

func (rs *resource) DeleteLot(c *gin.Context) {
	lid, ok := serdser.PathID(c, "lid")
	if !ok {
		return
	}
	if err := rs.lots.DeleteLot(c, lid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) ListSpots(c *gin.Context) {
	lid, ok := serdser.PathID(c, "lid")
	if !ok {
		return
	}
	l, ss, err := rs.lots.Spots(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lot":   newSerLot(l),
		"spots": serSpots(ss),
	})
}

func (rs *resource) AddSpot(c *gin.Context) {
	lid, ok := serdser.PathID(c, "lid")
	if !ok {
		return
	}
	req := rs.DserSpotReq(c)
	if req == nil {
		return
	}
	s, err := rs.lots.AddSpot(c, lid, req.Number)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSerSpot(s))
}

func (rs *resource) EditSpot(c *gin.Context) {
	sid, ok := serdser.PathID(c, "sid")
	if !ok {
		return
	}
	req := rs.DserEditSpotReq(c)
	if req == nil {
		return
	}
	s, err := rs.lots.EditSpot(c, sid, req.Number, req.Status)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newSerSpot(s))
}

func (rs *resource) DeleteSpot(c *gin.Context) {
	sid, ok := serdser.PathID(c, "sid")
	if !ok {
		return
	}
	if err := rs.lots.DeleteSpot(c, sid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) Overview(c *gin.Context) {
	ov, err := rs.lots.Overview(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lots":           serLots(ov.Lots),
		"total_lots":     ov.TotalLots,
		"total_spots":    ov.TotalSpots,
		"total_occupied": ov.TotalOccupied,
	})
}
