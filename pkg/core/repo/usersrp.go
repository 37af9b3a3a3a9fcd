package repo

import (
	"context"

	"github.com/openpark/parkweb/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

type UsersQueryer interface {
	// Create inserts a new user row and returns the created user
	// including its assigned identifier. A username or email collision
	// is reported as a duplication error.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
