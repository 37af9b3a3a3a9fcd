package lotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/model"
)

// The price is a pointer, so a legitimate zero price stays
// distinguishable from an absent field and only the latter fails the
// required validation.
type lotReq struct {
	Name         string   `form:"name" binding:"required"`
	Address      string   `form:"address" binding:"required"`
	PinCode      string   `form:"pin_code" binding:"required"`
	PricePerHour *float64 `form:"price_per_hour" binding:"required,gte=0"`
	MaxSpots     int      `form:"max_spots" binding:"required,gt=0"`
}

func (rs *resource) DserLotReq(c *gin.Context) *lotReq {
	req := &lotReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return req
}

type editLotReq struct {
	Name         string   `form:"name" binding:"required"`
	Address      string   `form:"address" binding:"required"`
	PinCode      string   `form:"pin_code" binding:"required"`
	PricePerHour *float64 `form:"price_per_hour" binding:"required,gte=0"`
}

func (rs *resource) DserEditLotReq(c *gin.Context) *editLotReq {
	req := &editLotReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return req
}

type spotReq struct {
	Number string `form:"number" binding:"required"`
}

func (rs *resource) DserSpotReq(c *gin.Context) *spotReq {
	req := &spotReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return req
}

type rawEditSpotReq struct {
	Number string `form:"number" binding:"required"`
	Status string `form:"status" binding:"required,oneof=Available Occupied"`
}

type editSpotReq struct {
	Number string
	Status model.SpotStatus
}

func (rs *resource) DserEditSpotReq(c *gin.Context) *editSpotReq {
	req := &rawEditSpotReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	status, err := model.ParseSpotStatus(req.Status)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "status", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &editSpotReq{Number: req.Number, Status: status}
}

type serLot struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PinCode       string  `json:"pin_code"`
	PricePerHour  float64 `json:"price_per_hour"`
	MaxSpots      int     `json:"max_spots"`
	OccupiedSpots int     `json:"occupied_spots"`
	FreeSpots     int     `json:"free_spots"`
}

// newSerLot serializes one lot with its derived free spots count.
func newSerLot(l *model.Lot) *serLot {
	return &serLot{
		ID:            l.ID,
		Name:          l.Name,
		Address:       l.Address,
		PinCode:       l.PinCode,
		PricePerHour:  l.PricePerHour,
		MaxSpots:      l.MaxSpots,
		OccupiedSpots: l.OccupiedSpots,
		FreeSpots:     l.FreeSpots(),
	}
}

func serLots(ls []model.Lot) []serLot {
	sls := make([]serLot, len(ls))
	for i := range ls {
		sls[i] = *newSerLot(&ls[i])
	}
	return sls
}

type serSpot struct {
	ID     int64  `json:"id"`
	LotID  int64  `json:"lot_id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

func newSerSpot(s *model.Spot) *serSpot {
	return &serSpot{
		ID:     s.ID,
		LotID:  s.LotID,
		Number: s.Number,
		Status: s.Status.String(),
	}
}

func serSpots(ss []model.Spot) []serSpot {
	sss := make([]serSpot, len(ss))
	for i := range ss {
		sss[i] = *newSerSpot(&ss[i])
	}
	return sss
}
