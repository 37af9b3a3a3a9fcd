package resrvrp

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

type gReservation struct {
	ID        int64 `gorm:"primaryKey"`
	SpotID    int64
	UserID    int64
	ParkedAt  time.Time  `gorm:"column:parking_timestamp"`
	LeftAt    *time.Time `gorm:"column:leaving_timestamp"`
	Cost      *float64   `gorm:"column:total_cost"`
	Active    bool       `gorm:"column:is_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gr *gReservation) TableName() string {
	return "parking_reservations"
}

func (gr *gReservation) Model() *model.Reservation {
	return &model.Reservation{
		ID:       gr.ID,
		SpotID:   gr.SpotID,
		UserID:   gr.UserID,
		ParkedAt: gr.ParkedAt,
		LeftAt:   gr.LeftAt,
		Cost:     gr.Cost,
		Active:   gr.Active,
	}
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, spotID, userID int64, parkedAt time.Time,
) (*model.Reservation, error) {
	gdb := q.GORM(ctx)
	gr := &gReservation{
		SpotID:   spotID,
		UserID:   userID,
		ParkedAt: parkedAt,
		Active:   true,
	}
	if err := gdb.Create(gr).Error; err != nil {
		// The partial unique indices reject a second active
		// reservation for the same user or the same spot, whichever
		// concurrent transaction commits last.
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Conflict(fmt.Errorf(
				"user %d or spot %d is already reserved: %w",
				userID, spotID, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}

func LockActive[Q postgres.Queryer](ctx context.Context, q Q, id, userID int64) (*model.Reservation, error) {
	gdb := q.GORM(ctx)
	var gr gReservation
	err := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"id=? AND user_id=? AND is_active", id, userID,
	).Take(&gr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf(
				"active reservation %d: %w", id, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}

func Close[Q postgres.Queryer](
	ctx context.Context, q Q, id int64, leftAt time.Time, cost float64,
) (*model.Reservation, error) {
	gdb := q.GORM(ctx)
	var grs []gReservation
	gdb.Model(&grs).Clauses(clause.Returning{}).Select(
		"leaving_timestamp", "total_cost", "is_active", "updated_at",
	).Where(
		"id=? AND is_active", id,
	).Updates(gReservation{
		LeftAt: &leftAt,
		Cost:   &cost,
		Active: false,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(grs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return grs[0].Model(), nil
}

func HasActiveByUser[Q postgres.Queryer](ctx context.Context, q Q, userID int64) (bool, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Model(&gReservation{}).Where(
		"user_id=? AND is_active", userID,
	).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func HasActiveBySpot[Q postgres.Queryer](ctx context.Context, q Q, spotID int64) (bool, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Model(&gReservation{}).Where(
		"spot_id=? AND is_active", spotID,
	).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func CountActiveInLot[Q postgres.Queryer](ctx context.Context, q Q, lotID int64) (int64, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Model(&gReservation{}).Joins(
		"JOIN parking_spots"+
			" ON parking_spots.id = parking_reservations.spot_id",
	).Where(
		"parking_spots.lot_id=? AND parking_reservations.is_active",
		lotID,
	).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}

type gDetail struct {
	ID         int64
	SpotID     int64
	UserID     int64
	ParkedAt   time.Time  `gorm:"column:parking_timestamp"`
	LeftAt     *time.Time `gorm:"column:leaving_timestamp"`
	Cost       *float64   `gorm:"column:total_cost"`
	Active     bool       `gorm:"column:is_active"`
	SpotNumber string
	LotName    string `gorm:"column:prime_location_name"`
}

func (gd *gDetail) Model() *model.ReservationDetail {
	return &model.ReservationDetail{
		Reservation: model.Reservation{
			ID:       gd.ID,
			SpotID:   gd.SpotID,
			UserID:   gd.UserID,
			ParkedAt: gd.ParkedAt,
			LeftAt:   gd.LeftAt,
			Cost:     gd.Cost,
			Active:   gd.Active,
		},
		LotName:    gd.LotName,
		SpotNumber: gd.SpotNumber,
	}
}

const detailsQuery = `SELECT r.id, r.spot_id, r.user_id,
    r.parking_timestamp, r.leaving_timestamp, r.total_cost,
    r.is_active, s.spot_number, l.prime_location_name
FROM parking_reservations r
JOIN parking_spots s ON s.id = r.spot_id
JOIN parking_lots l ON l.id = s.lot_id
WHERE r.user_id = ? AND r.is_active = ?
ORDER BY r.parking_timestamp DESC, r.id DESC`

// DetailsByUser lists the reservations of one user together with the
// lot name and spot number of each, newest first. The active flag
// selects between the in-progress reservations and the history.
func DetailsByUser[Q postgres.Queryer](
	ctx context.Context, q Q, userID int64, active bool,
) ([]model.ReservationDetail, error) {
	gdb := q.GORM(ctx)
	var gds []gDetail
	err := gdb.Raw(detailsQuery, userID, active).Scan(&gds).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	details := make([]model.ReservationDetail, len(gds))
	for i := range gds {
		details[i] = *gds[i].Model()
	}
	return details, nil
}

const statsQuery = `SELECT count(*) AS total,
    count(*) FILTER (WHERE NOT is_active) AS completed,
    coalesce(sum(total_cost), 0) AS spent
FROM parking_reservations
WHERE user_id = ?`

func StatsByUser[Q postgres.Queryer](ctx context.Context, q Q, userID int64) (
	total, completed int64, spent float64, err error,
) {
	gdb := q.GORM(ctx)
	var row struct {
		Total     int64
		Completed int64
		Spent     float64
	}
	if err = gdb.Raw(statsQuery, userID).Scan(&row).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("query: %w", err)
	}
	return row.Total, row.Completed, row.Spent, nil
}
