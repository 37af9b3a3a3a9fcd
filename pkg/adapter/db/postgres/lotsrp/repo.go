package lotsrp

import (
	"context"

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

func (lots *Repo) Conn(c repo.Conn) repo.LotsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, l *model.Lot) (*model.Lot, error) {
	return Create(ctx, cq.Conn, l)
}

func (cq connQueryer) Update(
	ctx context.Context, id int64,
	name, address, pinCode string, pricePerHour float64,
) (*model.Lot, error) {
	return Update(ctx, cq.Conn, id, name, address, pinCode, pricePerHour)
}

func (cq connQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, cq.Conn, id)
}

func (cq connQueryer) ByID(ctx context.Context, id int64) (*model.Lot, error) {
	return ByID(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Lot, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) ListAvailable(ctx context.Context) ([]model.Lot, error) {
	return ListAvailable(ctx, cq.Conn)
}

func (cq connQueryer) AdjustCounters(ctx context.Context, id int64, maxDelta, occupiedDelta int) error {
	return AdjustCounters(ctx, cq.Conn, id, maxDelta, occupiedDelta)
}

type txQueryer struct {
	*postgres.Tx
}

func (lots *Repo) Tx(tx repo.Tx) repo.LotsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, l *model.Lot) (*model.Lot, error) {
	return Create(ctx, tq.Tx, l)
}

func (tq txQueryer) Update(
	ctx context.Context, id int64,
	name, address, pinCode string, pricePerHour float64,
) (*model.Lot, error) {
	return Update(ctx, tq.Tx, id, name, address, pinCode, pricePerHour)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) ByID(ctx context.Context, id int64) (*model.Lot, error) {
	return ByID(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Lot, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) ListAvailable(ctx context.Context) ([]model.Lot, error) {
	return ListAvailable(ctx, tq.Tx)
}

func (tq txQueryer) AdjustCounters(ctx context.Context, id int64, maxDelta, occupiedDelta int) error {
	return AdjustCounters(ctx, tq.Tx, id, maxDelta, occupiedDelta)
}
