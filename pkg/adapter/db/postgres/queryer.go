package postgres

import (
	"context"

	"github.com/openpark/parkweb/pkg/core/repo"
	"gorm.io/gorm"
)

type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM exposes the gorm.DB instance of a connection or
	// transaction, so the generic query functions of the repository
	// packages can run under either of them uniformly.
	GORM(ctx context.Context) *gorm.DB
}
