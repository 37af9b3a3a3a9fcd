package usersrp

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

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, cq.Conn, u)
}

func (cq connQueryer) ByID(ctx context.Context, id int64) (*model.User, error) {
	return ByID(ctx, cq.Conn, id)
}

func (cq connQueryer) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return ByUsername(ctx, cq.Conn, username)
}

func (cq connQueryer) List(ctx context.Context) ([]model.User, error) {
	return List(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, tq.Tx, u)
}

func (tq txQueryer) ByID(ctx context.Context, id int64) (*model.User, error) {
	return ByID(ctx, tq.Tx, id)
}

func (tq txQueryer) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return ByUsername(ctx, tq.Tx, username)
}

func (tq txQueryer) List(ctx context.Context) ([]model.User, error) {
	return List(ctx, tq.Tx)
}
