package spotsrp

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

type gSpot struct {
	ID        int64 `gorm:"primaryKey"`
	LotID     int64
	Number    string `gorm:"column:spot_number"`
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gs *gSpot) TableName() string {
	return "parking_spots"
}

func (gs *gSpot) Model() (*model.Spot, error) {
	status, err := model.ParseSpotStatus(gs.Status)
	if err != nil {
		return nil, fmt.Errorf("parsing status %q: %w", gs.Status, err)
	}
	return &model.Spot{
		ID:     gs.ID,
		LotID:  gs.LotID,
		Number: gs.Number,
		Status: status,
	}, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, lotID int64, number string) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	gs := &gSpot{
		LotID:  lotID,
		Number: number,
		Status: model.SpotAvailable.String(),
	}
	if err := gdb.Create(gs).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Duplicate(fmt.Errorf(
				"spot number %q is taken in lot %d: %w",
				number, lotID, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gs.Model()
}

func CreateBatch[Q postgres.Queryer](ctx context.Context, q Q, lotID int64, numbers []string) error {
	if len(numbers) == 0 {
		return nil
	}
	gdb := q.GORM(ctx)
	gss := make([]gSpot, len(numbers))
	for i, number := range numbers {
		gss[i] = gSpot{
			LotID:  lotID,
			Number: number,
			Status: model.SpotAvailable.String(),
		}
	}
	if err := gdb.Create(&gss).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return cerr.Duplicate(fmt.Errorf(
				"spot numbers are taken in lot %d: %w", lotID, err,
			))
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gs gSpot
	if err := gdb.Where("id=?", id).Take(&gs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf("spot %d: %w", id, err))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gs.Model()
}

// ListByLot orders spots by the length of their numbers before their
// lexicographic order, so the sequentially assigned S1, S2, ..., S10
// numbers come out in their numeric order.
func ListByLot[Q postgres.Queryer](ctx context.Context, q Q, lotID int64) ([]model.Spot, error) {
	gdb := q.GORM(ctx)
	var gss []gSpot
	err := gdb.Where("lot_id=?", lotID).Order(
		"length(spot_number), spot_number",
	).Find(&gss).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	spots := make([]model.Spot, len(gss))
	for i := range gss {
		s, err := gss[i].Model()
		if err != nil {
			return nil, err
		}
		spots[i] = *s
	}
	return spots, nil
}

func LockByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gs gSpot
	err := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"id=?", id,
	).Take(&gs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf("spot %d: %w", id, err))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gs.Model()
}

func LockFirstAvailable[Q postgres.Queryer](ctx context.Context, q Q, lotID int64) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gss []gSpot
	err := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"lot_id=? AND status=?", lotID, model.SpotAvailable.String(),
	).Order("id").Limit(1).Find(&gss).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gss) == 0 {
		return nil, cerr.NoCapacity(fmt.Errorf(
			"no available spot in lot %d", lotID,
		))
	}
	return gss[0].Model()
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, id int64,
	number string, status model.SpotStatus,
) (*model.Spot, error) {
	gdb := q.GORM(ctx)
	var gss []gSpot
	gdb.Model(&gss).Clauses(clause.Returning{}).Select(
		"spot_number", "status", "updated_at",
	).Where(
		"id=?", id,
	).Updates(gSpot{
		Number: number,
		Status: status.String(),
	})
	if err := gdb.Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Duplicate(fmt.Errorf(
				"spot number %q is taken: %w", number, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gss); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gss[0].Model()
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) error {
	gdb := q.GORM(ctx)
	d := gdb.Where("id=?", id).Delete(&gSpot{})
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
