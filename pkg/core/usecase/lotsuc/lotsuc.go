// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsuc contains the lots UseCase which supports the
// administration use cases for parking lots and their spots:
// creation, modification, and deletion of lots, individual spot
// addition, modification, and deletion, and the overview queries.
//
// All mutating use cases run in a single transaction, so either every
// affected row (lot, spots, counters) is committed together or none
// of them is.
package lotsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/log"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
)

// UseCase represents a lots administration use case. It holds a
// database connection pool and the lots, spots, and reservations
// repository instances (to be guided with the DB pool).
type UseCase struct {
	pool    repo.Pool
	lotsrp  repo.Lots
	spotsrp repo.Spots
	resrvrp repo.Reservations
}

// New instantiates a lots administration use case.
func New(
	p repo.Pool, l repo.Lots, s repo.Spots, r repo.Reservations,
) *UseCase {
	return &UseCase{pool: p, lotsrp: l, spotsrp: s, resrvrp: r}
}

// Overview aggregates the administration dashboard data: all lots
// with the total lots count, the total spots capacity, and the total
// occupied spots count.
type Overview struct {
	Lots          []model.Lot
	TotalLots     int
	TotalSpots    int
	TotalOccupied int
}

func validateLotFields(
	name, address, pinCode string, pricePerHour float64, maxSpots int,
) error {
	switch {
	case name == "" || address == "" || pinCode == "":
		return cerr.Validation(errors.New("all fields are required"))
	case pricePerHour < 0:
		return cerr.Validation(errors.New("price cannot be negative"))
	case maxSpots <= 0:
		return cerr.Validation(errors.New("maximum spots must be positive"))
	}
	return nil
}

// AddLot use case creates a new lot and exactly maxSpots spots in it,
// numbered sequentially from S1 and all available, within a single
// transaction. A lot name collision rolls the whole creation back,
// including every created spot.
func (lots *UseCase) AddLot(
	ctx context.Context,
	name, address, pinCode string, pricePerHour float64, maxSpots int,
) (l *model.Lot, err error) {
	err = validateLotFields(name, address, pinCode, pricePerHour, maxSpots)
	if err != nil {
		return nil, err
	}
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			lq := lots.lotsrp.Tx(tx)
			l, err = lq.Create(ctx, &model.Lot{
				Name:         name,
				Address:      address,
				PinCode:      pinCode,
				PricePerHour: pricePerHour,
				MaxSpots:     maxSpots,
			})
			if err != nil {
				return err
			}
			numbers := make([]string, maxSpots)
			for i := range numbers {
				numbers[i] = fmt.Sprintf("S%d", i+1)
			}
			sq := lots.spotsrp.Tx(tx)
			return sq.CreateBatch(ctx, l.ID, numbers)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "added lot",
		log.Int64("lot_id", l.ID), log.Int64("spots", int64(maxSpots)),
	)
	return l, nil
}

// EditLot use case modifies the descriptive fields of an existing
// lot. The spots count is not resized here; capacity only changes by
// adding or deleting individual spots.
func (lots *UseCase) EditLot(
	ctx context.Context, id int64,
	name, address, pinCode string, pricePerHour float64,
) (l *model.Lot, err error) {
	err = validateLotFields(name, address, pinCode, pricePerHour, 1)
	if err != nil {
		return nil, err
	}
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := lots.lotsrp.Conn(c)
		l, err = q.Update(ctx, id, name, address, pinCode, pricePerHour)
		return err
	})
	if err != nil {
		l = nil
	}
	return
}

// DeleteLot use case removes a lot with all of its spots and their
// historical reservations. A lot with any actively reserved spot may
// not be deleted; the whole operation fails with a conflict error and
// nothing changes.
func (lots *UseCase) DeleteLot(ctx context.Context, id int64) error {
	return lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			rq := lots.resrvrp.Tx(tx)
			n, err := rq.CountActiveInLot(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return cerr.Conflict(fmt.Errorf(
					"lot has %d actively parked vehicles", n,
				))
			}
			return lots.lotsrp.Tx(tx).Delete(ctx, id)
		})
	})
}

// Lots use case returns all lots.
func (lots *UseCase) Lots(ctx context.Context) (
	ls []model.Lot, err error,
) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ls, err = lots.lotsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		ls = nil
	}
	return
}

// Overview use case aggregates all lots and their counters for the
// administration dashboard.
func (lots *UseCase) Overview(ctx context.Context) (*Overview, error) {
	ls, err := lots.Lots(ctx)
	if err != nil {
		return nil, err
	}
	ov := &Overview{Lots: ls, TotalLots: len(ls)}
	for i := range ls {
		ov.TotalSpots += ls[i].MaxSpots
		ov.TotalOccupied += ls[i].OccupiedSpots
	}
	return ov, nil
}

// Spots use case returns one lot and all of its spots, ordered by
// their spot numbers.
func (lots *UseCase) Spots(ctx context.Context, lotID int64) (
	l *model.Lot, ss []model.Spot, err error,
) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err = lots.lotsrp.Conn(c).ByID(ctx, lotID)
		if err != nil {
			return err
		}
		ss, err = lots.spotsrp.Conn(c).ListByLot(ctx, lotID)
		return err
	})
	if err != nil {
		l, ss = nil, nil
	}
	return
}

// AddSpot use case creates one available spot in an existing lot and
// grows the lot capacity accordingly, within a single transaction.
func (lots *UseCase) AddSpot(
	ctx context.Context, lotID int64, number string,
) (s *model.Spot, err error) {
	if number == "" {
		return nil, cerr.Validation(
			errors.New("spot number is required"),
		)
	}
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := lots.lotsrp.Tx(tx).ByID(ctx, lotID); err != nil {
				return err
			}
			s, err = lots.spotsrp.Tx(tx).Create(ctx, lotID, number)
			if err != nil {
				return err
			}
			return lots.lotsrp.Tx(tx).AdjustCounters(ctx, lotID, 1, 0)
		})
	})
	if err != nil {
		s = nil
	}
	return
}

// EditSpot use case renames a spot and/or overrides its status.
// An occupied spot with an active reservation may not be forced back
// to available; it must be released through the booking use case.
// Manual status overrides keep the occupied spots counter of the
// owning lot consistent with the spot statuses.
func (lots *UseCase) EditSpot(
	ctx context.Context, spotID int64,
	number string, status model.SpotStatus,
) (s *model.Spot, err error) {
	if number == "" {
		return nil, cerr.Validation(
			errors.New("spot number is required"),
		)
	}
	if err = status.Validate(); err != nil {
		return nil, cerr.Validation(err)
	}
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			sq := lots.spotsrp.Tx(tx)
			old, err := sq.LockByID(ctx, spotID)
			if err != nil {
				return err
			}
			if old.Status == model.SpotOccupied &&
				status == model.SpotAvailable {
				reserved, err := lots.resrvrp.Tx(tx).HasActiveBySpot(
					ctx, spotID,
				)
				if err != nil {
					return err
				}
				if reserved {
					return cerr.Conflict(errors.New(
						"spot has an active reservation" +
							" and must be released by its user",
					))
				}
			}
			if delta := occupiedDelta(old.Status, status); delta != 0 {
				err = lots.lotsrp.Tx(tx).AdjustCounters(
					ctx, old.LotID, 0, delta,
				)
				if err != nil {
					return err
				}
			}
			s, err = sq.Update(ctx, spotID, number, status)
			return err
		})
	})
	if err != nil {
		s = nil
	}
	return
}

// DeleteSpot use case removes a spot without an active reservation,
// shrinking the lot capacity and, for an occupied spot, its occupied
// spots counter, all within a single transaction.
func (lots *UseCase) DeleteSpot(ctx context.Context, spotID int64) error {
	return lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			s, err := lots.spotsrp.Tx(tx).LockByID(ctx, spotID)
			if err != nil {
				return err
			}
			reserved, err := lots.resrvrp.Tx(tx).HasActiveBySpot(
				ctx, spotID,
			)
			if err != nil {
				return err
			}
			if reserved {
				return cerr.Conflict(errors.New(
					"spot has an active reservation",
				))
			}
			if err = lots.spotsrp.Tx(tx).Delete(ctx, spotID); err != nil {
				return err
			}
			occupied := 0
			if s.Status == model.SpotOccupied {
				occupied = -1
			}
			return lots.lotsrp.Tx(tx).AdjustCounters(
				ctx, s.LotID, -1, occupied,
			)
		})
	})
}

func occupiedDelta(from, to model.SpotStatus) int {
	switch {
	case from == to:
		return 0
	case to == model.SpotOccupied:
		return 1
	default:
		return -1
	}
}
