// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookuc contains the bookings UseCase which supports the
// user facing reservation use cases:
//  1. Booking an available spot in a chosen lot,
//  2. Releasing a held spot and billing the elapsed time,
//  3. Querying the user dashboard data.
//
// Booking and releasing run in a single transaction each, so the
// spot status, the reservation row, and the occupied spots counter
// of the lot always change together or not at all.
package bookuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/log"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
)

// UseCase represents a bookings use case. It holds a database
// connection pool, the lots, spots, and reservations repository
// instances (to be guided with the DB pool), and the wall clock
// which provides the check-in and check-out instants.
type UseCase struct {
	pool    repo.Pool
	lotsrp  repo.Lots
	spotsrp repo.Spots
	resrvrp repo.Reservations

	now func() time.Time
}

// New instantiates a bookings use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, l repo.Lots, s repo.Spots, r repo.Reservations,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, lotsrp: l, spotsrp: s, resrvrp: r}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Dashboard aggregates the user dashboard data: the lots with free
// spots, the active reservations and the parking history of the
// user, and the aggregate totals over all of their reservations.
type Dashboard struct {
	AvailableLots []model.Lot
	Active        []model.ReservationDetail
	History       []model.ReservationDetail

	TotalReservations     int64
	CompletedReservations int64
	TotalSpent            float64
}

// Book use case claims one available spot in the given lot for the
// given user. A user holding an active reservation anywhere may not
// book another spot. Among the available spots of the lot, the one
// with the lowest identifier is claimed; its row is locked first, so
// two concurrent bookings can never claim the same spot. On success,
// the created reservation with the claimed spot details is returned.
func (books *UseCase) Book(
	ctx context.Context, userID, lotID int64,
) (d *model.ReservationDetail, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			rq := books.resrvrp.Tx(tx)
			held, err := rq.HasActiveByUser(ctx, userID)
			if err != nil {
				return err
			}
			if held {
				return cerr.Conflict(errors.New(
					"user already has an active reservation",
				))
			}
			lot, err := books.lotsrp.Tx(tx).ByID(ctx, lotID)
			if err != nil {
				return err
			}
			spot, err := books.spotsrp.Tx(tx).LockFirstAvailable(
				ctx, lotID,
			)
			if err != nil {
				return err
			}
			_, err = books.spotsrp.Tx(tx).Update(
				ctx, spot.ID, spot.Number, model.SpotOccupied,
			)
			if err != nil {
				return err
			}
			res, err := rq.Create(
				ctx, spot.ID, userID, books.now().UTC(),
			)
			if err != nil {
				return err
			}
			err = books.lotsrp.Tx(tx).AdjustCounters(ctx, lotID, 0, 1)
			if err != nil {
				return err
			}
			d = &model.ReservationDetail{
				Reservation: *res,
				LotName:     lot.Name,
				SpotNumber:  spot.Number,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "booked spot",
		log.Int64("reservation_id", d.ID),
		log.Int64("spot_id", d.SpotID),
		log.Int64("user_id", userID),
	)
	return d, nil
}

// Release use case terminates the active reservation with the given
// id, provided that it belongs to the given user. The check-out
// instant is taken from the clock, the elapsed time is billed with
// the hourly price of the lot, the reservation is closed with the
// computed cost, the spot becomes available again, and the occupied
// spots counter of the lot shrinks, all in one transaction.
// The closed reservation with its total cost is returned.
func (books *UseCase) Release(
	ctx context.Context, reservationID, userID int64,
) (d *model.ReservationDetail, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			res, err := books.resrvrp.Tx(tx).LockActive(
				ctx, reservationID, userID,
			)
			if err != nil {
				return err
			}
			spot, err := books.spotsrp.Tx(tx).LockByID(ctx, res.SpotID)
			if err != nil {
				return err
			}
			lot, err := books.lotsrp.Tx(tx).ByID(ctx, spot.LotID)
			if err != nil {
				return err
			}
			leftAt := books.now().UTC()
			cost := model.Bill(res.ParkedAt, leftAt, lot.PricePerHour)
			closed, err := books.resrvrp.Tx(tx).Close(
				ctx, res.ID, leftAt, cost,
			)
			if err != nil {
				return err
			}
			_, err = books.spotsrp.Tx(tx).Update(
				ctx, spot.ID, spot.Number, model.SpotAvailable,
			)
			if err != nil {
				return err
			}
			err = books.lotsrp.Tx(tx).AdjustCounters(
				ctx, lot.ID, 0, -1,
			)
			if err != nil {
				return err
			}
			d = &model.ReservationDetail{
				Reservation: *closed,
				LotName:     lot.Name,
				SpotNumber:  spot.Number,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "released spot",
		log.Int64("reservation_id", d.ID),
		log.Int64("user_id", userID),
	)
	return d, nil
}

// Dashboard use case collects the user dashboard data.
func (books *UseCase) Dashboard(
	ctx context.Context, userID int64,
) (d *Dashboard, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		d = &Dashboard{}
		lq := books.lotsrp.Conn(c)
		if d.AvailableLots, err = lq.ListAvailable(ctx); err != nil {
			return err
		}
		rq := books.resrvrp.Conn(c)
		if d.Active, err = rq.ActiveDetailsByUser(ctx, userID); err != nil {
			return err
		}
		d.History, err = rq.HistoryDetailsByUser(ctx, userID)
		if err != nil {
			return err
		}
		d.TotalReservations, d.CompletedReservations, d.TotalSpent,
			err = rq.StatsByUser(ctx, userID)
		return err
	})
	if err != nil {
		d = nil
	}
	return
}
