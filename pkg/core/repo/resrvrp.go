package repo

import (
	"context"
	"time"

	"github.com/openpark/parkweb/pkg/core/model"
)

type ReservationsConnQueryer interface {
	ReservationsQueryer
}

type ReservationsTxQueryer interface {
	ReservationsQueryer
}

type ReservationsQueryer interface {
	// Create inserts a new active reservation, claiming the given
	// spot for the given user since the parkedAt instant.
	Create(
		ctx context.Context, spotID, userID int64, parkedAt time.Time,
	) (*model.Reservation, error)
	// LockActive fetches the active reservation with the given id
	// which belongs to the given user, locking its row for the rest
	// of the ambient transaction. Absence of such a reservation is
	// reported as a not-found error without revealing whether the id
	// exists for another user.
	LockActive(ctx context.Context, id, userID int64) (
		*model.Reservation, error,
	)
	// Close moves an active reservation to its terminal state,
	// recording the leaving instant and the total billed cost.
	Close(
		ctx context.Context, id int64, leftAt time.Time, cost float64,
	) (*model.Reservation, error)
	HasActiveByUser(ctx context.Context, userID int64) (bool, error)
	HasActiveBySpot(ctx context.Context, spotID int64) (bool, error)
	CountActiveInLot(ctx context.Context, lotID int64) (int64, error)
	ActiveDetailsByUser(ctx context.Context, userID int64) (
		[]model.ReservationDetail, error,
	)
	HistoryDetailsByUser(ctx context.Context, userID int64) (
		[]model.ReservationDetail, error,
	)
	// StatsByUser aggregates the reservations of one user: the total
	// reservations count, the completed reservations count, and the
	// sum of the billed costs.
	StatsByUser(ctx context.Context, userID int64) (
		total, completed int64, spent float64, err error,
	)
}

type Reservations interface {
	Conn(Conn) ReservationsConnQueryer
	Tx(Tx) ReservationsTxQueryer
}
