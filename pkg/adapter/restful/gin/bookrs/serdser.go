package bookrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/usecase/bookuc"
)

type bookReq struct {
	LotID int64 `form:"lot_id" binding:"required,gt=0"`
}

func (rs *resource) DserBookReq(c *gin.Context) *bookReq {
	req := &bookReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return req
}

type rawUpdateReservationReq struct {
	Op string `form:"op" binding:"required,oneof=release"`
}

type updateReservationReq struct {
	ReservationID int64
	Op            string
}

func (rs *resource) DserUpdateReservationReq(
	c *gin.Context,
) *updateReservationReq {
	rid, ok := serdser.PathID(c, "rid")
	if !ok {
		return nil
	}
	req := &rawUpdateReservationReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return &updateReservationReq{ReservationID: rid, Op: req.Op}
}

type serDetail struct {
	ID         int64    `json:"id"`
	SpotID     int64    `json:"spot_id"`
	LotName    string   `json:"lot_name"`
	SpotNumber string   `json:"spot_number"`
	ParkedAt   string   `json:"parked_at"`
	LeftAt     *string  `json:"left_at"`
	Cost       *float64 `json:"cost"`
	Active     bool     `json:"active"`
}

func (rs *resource) SerDetail(d *model.ReservationDetail) *serDetail {
	sd := &serDetail{
		ID:         d.ID,
		SpotID:     d.SpotID,
		LotName:    d.LotName,
		SpotNumber: d.SpotNumber,
		ParkedAt:   rs.formatTime(d.ParkedAt),
		Cost:       d.Cost,
		Active:     d.Active,
	}
	if d.LeftAt != nil {
		leftAt := rs.formatTime(*d.LeftAt)
		sd.LeftAt = &leftAt
	}
	return sd
}

func (rs *resource) SerDetails(ds []model.ReservationDetail) []serDetail {
	sds := make([]serDetail, len(ds))
	for i := range ds {
		sds[i] = *rs.SerDetail(&ds[i])
	}
	return sds
}

type serLot struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	PinCode      string  `json:"pin_code"`
	PricePerHour float64 `json:"price_per_hour"`
	FreeSpots    int     `json:"free_spots"`
}

func (rs *resource) SerDashboard(d *bookuc.Dashboard) gin.H {
	lots := make([]serLot, len(d.AvailableLots))
	for i := range d.AvailableLots {
		l := &d.AvailableLots[i]
		lots[i] = serLot{
			ID:           l.ID,
			Name:         l.Name,
			Address:      l.Address,
			PinCode:      l.PinCode,
			PricePerHour: l.PricePerHour,
			FreeSpots:    l.FreeSpots(),
		}
	}
	return gin.H{
		"available_lots": lots,
		"active":         rs.SerDetails(d.Active),
		"history":        rs.SerDetails(d.History),
		"stats": gin.H{
			"total_reservations":     d.TotalReservations,
			"completed_reservations": d.CompletedReservations,
			"total_spent":            d.TotalSpent,
		},
	}
}

func (rs *resource) formatTime(t time.Time) string {
	return t.In(rs.loc).Format(time.RFC3339)
}
