package repo

import (
	"context"

	"github.com/openpark/parkweb/pkg/core/model"
)

type SpotsConnQueryer interface {
	SpotsQueryer
}

type SpotsTxQueryer interface {
	SpotsQueryer
}

type SpotsQueryer interface {
	// Create inserts a new available spot in the given lot. A spot
	// number collision within the lot is reported as a duplication
	// error.
	Create(ctx context.Context, lotID int64, number string) (
		*model.Spot, error,
	)
	// CreateBatch inserts one available spot per given number in the
	// given lot, all within the ambient transaction.
	CreateBatch(ctx context.Context, lotID int64, numbers []string) error
	ByID(ctx context.Context, id int64) (*model.Spot, error)
	// ListByLot returns all spots of a lot, ordered by the numeric
	// part of their spot numbers (and lexically beyond that).
	ListByLot(ctx context.Context, lotID int64) ([]model.Spot, error)
	// LockByID fetches one spot, locking its row for the rest of the
	// ambient transaction.
	LockByID(ctx context.Context, id int64) (*model.Spot, error)
	// LockFirstAvailable picks the available spot with the lowest
	// identifier in the given lot and locks its row, so concurrent
	// bookings can never claim the same spot. Absence of available
	// spots is reported as a no-capacity error.
	LockFirstAvailable(ctx context.Context, lotID int64) (
		*model.Spot, error,
	)
	Update(
		ctx context.Context, id int64,
		number string, status model.SpotStatus,
	) (*model.Spot, error)
	Delete(ctx context.Context, id int64) error
}

type Spots interface {
	Conn(Conn) SpotsConnQueryer
	Tx(Tx) SpotsTxQueryer
}
