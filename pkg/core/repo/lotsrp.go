package repo

import (
	"context"

	"github.com/openpark/parkweb/pkg/core/model"
)

type LotsConnQueryer interface {
	LotsQueryer
}

type LotsTxQueryer interface {
	LotsQueryer
}

type LotsQueryer interface {
	// Create inserts a new lot row and returns the created lot
	// including its assigned identifier. A lot name collision is
	// reported as a duplication error.
	Create(ctx context.Context, l *model.Lot) (*model.Lot, error)
	// Update modifies the descriptive lot fields, not its counters.
	// The spots count may only change by adding or deleting spots.
	Update(
		ctx context.Context, id int64,
		name, address, pinCode string, pricePerHour float64,
	) (*model.Lot, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.Lot, error)
	List(ctx context.Context) ([]model.Lot, error)
	// ListAvailable returns the lots which have at least one free
	// spot right now.
	ListAvailable(ctx context.Context) ([]model.Lot, error)
	// AdjustCounters atomically applies the given deltas to the
	// spots counters of one lot, keeping the occupied spots count
	// within the [0, max spots] range. A delta which would move a
	// counter out of range indicates a broken invariant and fails
	// the surrounding transaction.
	AdjustCounters(
		ctx context.Context, id int64, maxDelta, occupiedDelta int,
	) error
}

type Lots interface {
	Conn(Conn) LotsConnQueryer
	Tx(Tx) LotsTxQueryer
}
