package lotsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gLot struct {
	ID            int64  `gorm:"primaryKey"`
	Name          string `gorm:"column:prime_location_name"`
	Address       string
	PinCode       string
	PricePerHour  float64
	MaxSpots      int `gorm:"column:maximum_number_of_spots"`
	OccupiedSpots int `gorm:"column:current_occupied_spots"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (gl *gLot) TableName() string {
	return "parking_lots"
}

func (gl *gLot) Model() *model.Lot {
	return &model.Lot{
		ID:            gl.ID,
		Name:          gl.Name,
		Address:       gl.Address,
		PinCode:       gl.PinCode,
		PricePerHour:  gl.PricePerHour,
		MaxSpots:      gl.MaxSpots,
		OccupiedSpots: gl.OccupiedSpots,
		CreatedAt:     gl.CreatedAt,
		UpdatedAt:     gl.UpdatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, l *model.Lot) (*model.Lot, error) {
	gdb := q.GORM(ctx)
	gl := &gLot{
		Name:         l.Name,
		Address:      l.Address,
		PinCode:      l.PinCode,
		PricePerHour: l.PricePerHour,
		MaxSpots:     l.MaxSpots,
	}
	if err := gdb.Create(gl).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Duplicate(fmt.Errorf(
				"lot name %q is taken: %w", l.Name, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model(), nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, id int64,
	name, address, pinCode string, pricePerHour float64,
) (*model.Lot, error) {
	gdb := q.GORM(ctx)
	var gl []gLot
	gdb.Model(&gl).Clauses(clause.Returning{}).Select(
		"prime_location_name", "address", "pin_code",
		"price_per_hour", "updated_at",
	).Where(
		"id=?", id,
	).Updates(gLot{
		Name:         name,
		Address:      address,
		PinCode:      pinCode,
		PricePerHour: pricePerHour,
	})
	if err := gdb.Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Duplicate(fmt.Errorf(
				"lot name %q is taken: %w", name, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gl); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gl[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) error {
	gdb := q.GORM(ctx)
	d := gdb.Where("id=?", id).Delete(&gLot{})
	if err := d.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := d.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Lot, error) {
	gdb := q.GORM(ctx)
	var gl gLot
	if err := gdb.Where("id=?", id).Take(&gl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf("lot %d: %w", id, err))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Lot, error) {
	gdb := q.GORM(ctx)
	var gls []gLot
	if err := gdb.Order("id").Find(&gls).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls), nil
}

func ListAvailable[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Lot, error) {
	gdb := q.GORM(ctx)
	var gls []gLot
	err := gdb.Where(
		"current_occupied_spots < maximum_number_of_spots",
	).Order("id").Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls), nil
}

func models(gls []gLot) []model.Lot {
	lots := make([]model.Lot, len(gls))
	for i := range gls {
		lots[i] = *gls[i].Model()
	}
	return lots
}

// AdjustCounters applies the deltas with a guarded update statement,
// so a delta which would take a counter out of the
// 0 <= occupied <= max range matches no row at all and the ambient
// transaction is failed instead of storing a broken counter.
func AdjustCounters[Q postgres.Queryer](
	ctx context.Context, q Q, id int64, maxDelta, occupiedDelta int,
) error {
	gdb := q.GORM(ctx)
	u := gdb.Exec(`UPDATE parking_lots
SET maximum_number_of_spots = maximum_number_of_spots + ?,
    current_occupied_spots = current_occupied_spots + ?,
    updated_at = now()
WHERE id = ?
    AND maximum_number_of_spots + ? >= 0
    AND current_occupied_spots + ? >= 0
    AND current_occupied_spots + ? <= maximum_number_of_spots + ?`,
		maxDelta, occupiedDelta, id,
		maxDelta, occupiedDelta, occupiedDelta, maxDelta,
	)
	if err := u.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := u.RowsAffected; n != 1 {
		return cerr.Storage(fmt.Errorf(
			"lot %d refused counter deltas (%d, %d)",
			id, maxDelta, occupiedDelta,
		))
	}
	return nil
}
