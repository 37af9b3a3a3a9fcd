package spotsrp

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

func (spots *Repo) Conn(c repo.Conn) repo.SpotsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, lotID int64, number string) (*model.Spot, error) {
	return Create(ctx, cq.Conn, lotID, number)
}

func (cq connQueryer) CreateBatch(ctx context.Context, lotID int64, numbers []string) error {
	return CreateBatch(ctx, cq.Conn, lotID, numbers)
}

func (cq connQueryer) ByID(ctx context.Context, id int64) (*model.Spot, error) {
	return ByID(ctx, cq.Conn, id)
}

func (cq connQueryer) ListByLot(ctx context.Context, lotID int64) ([]model.Spot, error) {
	return ListByLot(ctx, cq.Conn, lotID)
}

func (cq connQueryer) LockByID(ctx context.Context, id int64) (*model.Spot, error) {
	return LockByID(ctx, cq.Conn, id)
}

func (cq connQueryer) LockFirstAvailable(ctx context.Context, lotID int64) (*model.Spot, error) {
	return LockFirstAvailable(ctx, cq.Conn, lotID)
}

func (cq connQueryer) Update(
	ctx context.Context, id int64, number string, status model.SpotStatus,
) (*model.Spot, error) {
	return Update(ctx, cq.Conn, id, number, status)
}

func (cq connQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (spots *Repo) Tx(tx repo.Tx) repo.SpotsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, lotID int64, number string) (*model.Spot, error) {
	return Create(ctx, tq.Tx, lotID, number)
}

func (tq txQueryer) CreateBatch(ctx context.Context, lotID int64, numbers []string) error {
	return CreateBatch(ctx, tq.Tx, lotID, numbers)
}

func (tq txQueryer) ByID(ctx context.Context, id int64) (*model.Spot, error) {
	return ByID(ctx, tq.Tx, id)
}

func (tq txQueryer) ListByLot(ctx context.Context, lotID int64) ([]model.Spot, error) {
	return ListByLot(ctx, tq.Tx, lotID)
}

func (tq txQueryer) LockByID(ctx context.Context, id int64) (*model.Spot, error) {
	return LockByID(ctx, tq.Tx, id)
}

func (tq txQueryer) LockFirstAvailable(ctx context.Context, lotID int64) (*model.Spot, error) {
	return LockFirstAvailable(ctx, tq.Tx, lotID)
}

func (tq txQueryer) Update(
	ctx context.Context, id int64, number string, status model.SpotStatus,
) (*model.Spot, error) {
	return Update(ctx, tq.Tx, id, number, status)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}
