package resrvrp

import (
	"context"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (resrv *Repo) Conn(c repo.Conn) repo.ReservationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(
	ctx context.Context, spotID, userID int64, parkedAt time.Time,
) (*model.Reservation, error) {
	return Create(ctx, cq.Conn, spotID, userID, parkedAt)
}

func (cq connQueryer) LockActive(ctx context.Context, id, userID int64) (*model.Reservation, error) {
	return LockActive(ctx, cq.Conn, id, userID)
}

func (cq connQueryer) Close(
	ctx context.Context, id int64, leftAt time.Time, cost float64,
) (*model.Reservation, error) {
	return Close(ctx, cq.Conn, id, leftAt, cost)
}

func (cq connQueryer) HasActiveByUser(ctx context.Context, userID int64) (bool, error) {
	return HasActiveByUser(ctx, cq.Conn, userID)
}

func (cq connQueryer) HasActiveBySpot(ctx context.Context, spotID int64) (bool, error) {
	return HasActiveBySpot(ctx, cq.Conn, spotID)
}

func (cq connQueryer) CountActiveInLot(ctx context.Context, lotID int64) (int64, error) {
	return CountActiveInLot(ctx, cq.Conn, lotID)
}

func (cq connQueryer) ActiveDetailsByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	return DetailsByUser(ctx, cq.Conn, userID, true)
}

func (cq connQueryer) HistoryDetailsByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	return DetailsByUser(ctx, cq.Conn, userID, false)
}

func (cq connQueryer) StatsByUser(ctx context.Context, userID int64) (
	total, completed int64, spent float64, err error,
) {
	return StatsByUser(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (resrv *Repo) Tx(tx repo.Tx) repo.ReservationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(
	ctx context.Context, spotID, userID int64, parkedAt time.Time,
) (*model.Reservation, error) {
	return Create(ctx, tq.Tx, spotID, userID, parkedAt)
}

func (tq txQueryer) LockActive(ctx context.Context, id, userID int64) (*model.Reservation, error) {
	return LockActive(ctx, tq.Tx, id, userID)
}

func (tq txQueryer) Close(
	ctx context.Context, id int64, leftAt time.Time, cost float64,
) (*model.Reservation, error) {
	return Close(ctx, tq.Tx, id, leftAt, cost)
}

func (tq txQueryer) HasActiveByUser(ctx context.Context, userID int64) (bool, error) {
	return HasActiveByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) HasActiveBySpot(ctx context.Context, spotID int64) (bool, error) {
	return HasActiveBySpot(ctx, tq.Tx, spotID)
}

func (tq txQueryer) CountActiveInLot(ctx context.Context, lotID int64) (int64, error) {
	return CountActiveInLot(ctx, tq.Tx, lotID)
}

func (tq txQueryer) ActiveDetailsByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	return DetailsByUser(ctx, tq.Tx, userID, true)
}

func (tq txQueryer) HistoryDetailsByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	return DetailsByUser(ctx, tq.Tx, userID, false)
}

func (tq txQueryer) StatsByUser(ctx context.Context, userID int64) (
	total, completed int64, spent float64, err error,
) {
	return StatsByUser(ctx, tq.Tx, userID)
}
