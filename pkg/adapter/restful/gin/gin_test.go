// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/openpark/parkweb/internal/test/dbcontainer"
	"github.com/openpark/parkweb/pkg/adapter/config"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/schema"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/usersrp"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/routes"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
	"github.com/openpark/parkweb/pkg/core/usecase/bookuc"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMiddlewareConstructors(t *testing.T) {
	t.Parallel()
	require.NotNil(t, gin.Logger())
	require.NotNil(t, gin.Recovery())
	require.NotNil(t, gin.New(gin.Logger(), gin.Recovery()))
}

const base = "/api/parkweb/v1"

// fakeClock replaces the wall clock of the bookings use case, so the
// billed durations are controlled by the test cases instead of the
// test execution speed.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (fc *fakeClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

func (fc *fakeClock) Advance(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.now = fc.now.Add(d)
}

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine

	clock      *fakeClock
	adminToken string
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return schema.New(tx).InitSchema(ctx)
			})
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	c, err := config.Parse([]byte(`
auth:
  secret: integration-test-secret
  token-ttl: 1h
`))
	igts.Require().NoError(err, "failed to parse test configs")

	hashed, err := c.Auth.NewHasher().Hash("admin-password")
	igts.Require().NoError(err, "failed to hash admin password")
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, conn repo.Conn) error {
			_, err := usersrp.New().Conn(conn).Create(ctx, &model.User{
				Username:     "admin",
				Email:        "admin@example.com",
				PasswordHash: hashed,
				Role:         model.RoleAdmin,
			})
			return err
		},
	)
	igts.Require().NoError(err, "failed to create admin account")

	igts.clock = &fakeClock{now: time.Now()}
	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(
		igts.Gin, igts.Pool, c, bookuc.WithClock(igts.clock.Now),
	)
	igts.Require().NoError(err, "failed to register Gin routes")

	igts.adminToken = igts.login("admin", "admin-password")
}

func urlEncoded(m map[string]string) io.Reader {
	u := url.Values{}
	for k, v := range m {
		u.Set(k, v)
	}
	return strings.NewReader(u.Encode())
}

// request serializes the form as a url-encoded body, attaches the
// bearer token (unless empty), and runs the request in-process.
func (igts *IntegrationGinTestSuite) request(
	method, path, token string, form map[string]string,
) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = urlEncoded(form)
	}
	req := httptest.NewRequest(method, base+path, body)
	if form != nil {
		req.Header.Set(
			"Content-Type", "application/x-www-form-urlencoded",
		)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) decode(
	w *httptest.ResponseRecorder, out any,
) {
	err := json.Unmarshal(w.Body.Bytes(), out)
	igts.Require().NoError(
		err, "failed to decode response: %s", w.Body.String(),
	)
}

type serUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
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

type serSpot struct {
	ID     int64  `json:"id"`
	LotID  int64  `json:"lot_id"`
	Number string `json:"number"`
	Status string `json:"status"`
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

type serDashboard struct {
	AvailableLots []serLot    `json:"available_lots"`
	Active        []serDetail `json:"active"`
	History       []serDetail `json:"history"`
	Stats         struct {
		TotalReservations     int64   `json:"total_reservations"`
		CompletedReservations int64   `json:"completed_reservations"`
		TotalSpent            float64 `json:"total_spent"`
	} `json:"stats"`
}

// register creates a user account and returns its identifier.
func (igts *IntegrationGinTestSuite) register(
	username, password string,
) int64 {
	w := igts.request(http.MethodPost, "/auth/register", "",
		map[string]string{
			"username": username,
			"email":    username + "@example.com",
			"password": password,
		},
	)
	igts.Require().Equal(
		http.StatusCreated, w.Code, "body: %s", w.Body.String(),
	)
	var u serUser
	igts.decode(w, &u)
	igts.Equal(username, u.Username)
	igts.Equal("user", u.Role)
	igts.NotEmpty(u.CreatedAt)
	return u.ID
}

// login verifies the credentials and returns a bearer token.
func (igts *IntegrationGinTestSuite) login(
	username, password string,
) string {
	w := igts.request(http.MethodPost, "/auth/login", "",
		map[string]string{
			"username": username,
			"password": password,
		},
	)
	igts.Require().Equal(
		http.StatusOK, w.Code, "body: %s", w.Body.String(),
	)
	var resp struct {
		Token string  `json:"token"`
		User  serUser `json:"user"`
	}
	igts.decode(w, &resp)
	igts.Require().NotEmpty(resp.Token, "missing bearer token")
	return resp.Token
}

// addLot creates a lot with the given name and spots count, using the
// administrator account, and returns its serialized form.
func (igts *IntegrationGinTestSuite) addLot(
	name string, price float64, maxSpots int,
) serLot {
	w := igts.request(http.MethodPost, "/admin/lots", igts.adminToken,
		map[string]string{
			"name":           name,
			"address":        "1 Example Street",
			"pin_code":       "123456",
			"price_per_hour": fmt.Sprintf("%g", price),
			"max_spots":      fmt.Sprintf("%d", maxSpots),
		},
	)
	igts.Require().Equal(
		http.StatusCreated, w.Code, "body: %s", w.Body.String(),
	)
	var l serLot
	igts.decode(w, &l)
	return l
}

// lotSpots lists the spots of the given lot with their lot counters.
func (igts *IntegrationGinTestSuite) lotSpots(lotID int64) (
	serLot, []serSpot,
) {
	w := igts.request(
		http.MethodGet, fmt.Sprintf("/admin/lots/%d/spots", lotID),
		igts.adminToken, nil,
	)
	igts.Require().Equal(
		http.StatusOK, w.Code, "body: %s", w.Body.String(),
	)
	var resp struct {
		Lot   serLot    `json:"lot"`
		Spots []serSpot `json:"spots"`
	}
	igts.decode(w, &resp)
	return resp.Lot, resp.Spots
}

func (igts *IntegrationGinTestSuite) dashboard(
	token string,
) serDashboard {
	w := igts.request(http.MethodGet, "/dashboard", token, nil)
	igts.Require().Equal(
		http.StatusOK, w.Code, "body: %s", w.Body.String(),
	)
	var d serDashboard
	igts.decode(w, &d)
	return d
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	igts.register("requester", "secret-pass")
	token := igts.login("requester", "secret-pass")
	for _, tc := range []struct {
		name          string
		method, path  string
		form          map[string]string
		token         string
		expectedInMsg string
	}{
		{
			name:   "register no body",
			method: http.MethodPost, path: "/auth/register",
			expectedInMsg: "required",
		},
		{
			name:   "register short username",
			method: http.MethodPost, path: "/auth/register",
			form: map[string]string{
				"username": "ab",
				"email":    "ab@example.com",
				"password": "secret-pass",
			},
			expectedInMsg: "min",
		},
		{
			name:   "register bad email",
			method: http.MethodPost, path: "/auth/register",
			form: map[string]string{
				"username": "valid-name",
				"email":    "not-an-email",
				"password": "secret-pass",
			},
			expectedInMsg: "email",
		},
		{
			name:   "register short password",
			method: http.MethodPost, path: "/auth/register",
			form: map[string]string{
				"username": "valid-name",
				"email":    "valid@example.com",
				"password": "short",
			},
			expectedInMsg: "min",
		},
		{
			name:   "lot without price",
			method: http.MethodPost, path: "/admin/lots",
			form: map[string]string{
				"name":      "Priceless Lot",
				"address":   "4 Example Street",
				"pin_code":  "123456",
				"max_spots": "3",
			},
			token:         igts.adminToken,
			expectedInMsg: "required",
		},
		{
			name:   "book no lot",
			method: http.MethodPost, path: "/reservations",
			token:         token,
			expectedInMsg: "required",
		},
		{
			name:   "book zero lot",
			method: http.MethodPost, path: "/reservations",
			form:          map[string]string{"lot_id": "0"},
			token:         token,
			expectedInMsg: "required",
		},
		{
			name:   "release invalid op",
			method: http.MethodPatch, path: "/reservations/1",
			form:          map[string]string{"op": "cancel"},
			token:         token,
			expectedInMsg: "oneof",
		},
		{
			name:   "release non-integer id",
			method: http.MethodPatch, path: "/reservations/abc",
			form:          map[string]string{"op": "release"},
			token:         token,
			expectedInMsg: "positive integer",
		},
	} {
		igts.Run(tc.name, func() {
			w := igts.request(tc.method, tc.path, tc.token, tc.form)
			igts.Equal(http.StatusBadRequest, w.Code)
			igts.Contains(w.Body.String(), tc.expectedInMsg)
		})
	}
}

func (igts *IntegrationGinTestSuite) TestAuthFlow() {
	igts.register("gopher", "secret-pass")

	igts.Run("duplicate username", func() {
		w := igts.request(http.MethodPost, "/auth/register", "",
			map[string]string{
				"username": "gopher",
				"email":    "gopher2@example.com",
				"password": "secret-pass",
			},
		)
		igts.Equal(http.StatusConflict, w.Code)
	})
	igts.Run("wrong password", func() {
		w := igts.request(http.MethodPost, "/auth/login", "",
			map[string]string{
				"username": "gopher",
				"password": "wrong-pass",
			},
		)
		igts.Equal(http.StatusUnauthorized, w.Code)
		igts.Contains(
			w.Body.String(), "incorrect username or password",
		)
	})
	igts.Run("unknown username", func() {
		w := igts.request(http.MethodPost, "/auth/login", "",
			map[string]string{
				"username": "no-such-user",
				"password": "secret-pass",
			},
		)
		igts.Equal(http.StatusUnauthorized, w.Code)
		igts.Contains(
			w.Body.String(), "incorrect username or password",
		)
	})
	igts.Run("missing token", func() {
		w := igts.request(http.MethodGet, "/dashboard", "", nil)
		igts.Equal(http.StatusUnauthorized, w.Code)
	})
	igts.Run("garbage token", func() {
		w := igts.request(
			http.MethodGet, "/dashboard", "not.a.token", nil,
		)
		igts.Equal(http.StatusUnauthorized, w.Code)
	})
	igts.Run("non-admin is forbidden", func() {
		token := igts.login("gopher", "secret-pass")
		for _, path := range []string{
			"/admin/lots", "/admin/users", "/admin/overview",
		} {
			w := igts.request(http.MethodGet, path, token, nil)
			igts.Equal(http.StatusForbidden, w.Code, "path: %s", path)
		}
	})
	igts.Run("admin can list users", func() {
		w := igts.request(
			http.MethodGet, "/admin/users", igts.adminToken, nil,
		)
		igts.Equal(http.StatusOK, w.Code)
		var us []serUser
		igts.decode(w, &us)
		names := make([]string, len(us))
		for i, u := range us {
			names[i] = u.Username
		}
		igts.Contains(names, "admin")
		igts.Contains(names, "gopher")
	})
}

func (igts *IntegrationGinTestSuite) TestLotLifecycle() {
	l := igts.addLot("Central Plaza", 12.5, 5)
	igts.Equal("Central Plaza", l.Name)
	igts.Equal(5, l.MaxSpots)
	igts.Equal(0, l.OccupiedSpots)
	igts.Equal(5, l.FreeSpots)

	igts.Run("duplicate name", func() {
		w := igts.request(
			http.MethodPost, "/admin/lots", igts.adminToken,
			map[string]string{
				"name":           "Central Plaza",
				"address":        "2 Example Street",
				"pin_code":       "654321",
				"price_per_hour": "1",
				"max_spots":      "3",
			},
		)
		igts.Equal(http.StatusConflict, w.Code)
	})
	igts.Run("zero price is allowed", func() {
		free := igts.addLot("Free Lot", 0, 1)
		igts.Equal(float64(0), free.PricePerHour)
	})
	igts.Run("sequential spot numbers", func() {
		_, ss := igts.lotSpots(l.ID)
		igts.Require().Len(ss, 5)
		for i, s := range ss {
			igts.Equal(fmt.Sprintf("S%d", i+1), s.Number)
			igts.Equal("Available", s.Status)
		}
	})
	igts.Run("edit lot", func() {
		w := igts.request(
			http.MethodPut, fmt.Sprintf("/admin/lots/%d", l.ID),
			igts.adminToken,
			map[string]string{
				"name":           "Central Plaza",
				"address":        "3 Example Street",
				"pin_code":       "111111",
				"price_per_hour": "20",
			},
		)
		igts.Require().Equal(http.StatusOK, w.Code)
		var edited serLot
		igts.decode(w, &edited)
		igts.Equal("3 Example Street", edited.Address)
		igts.Equal(float64(20), edited.PricePerHour)
		igts.Equal(5, edited.MaxSpots, "editing may not resize a lot")
	})
	igts.Run("edit absent lot", func() {
		w := igts.request(
			http.MethodPut, "/admin/lots/98765", igts.adminToken,
			map[string]string{
				"name":           "No Such Lot",
				"address":        "nowhere",
				"pin_code":       "000000",
				"price_per_hour": "1",
			},
		)
		igts.Equal(http.StatusNotFound, w.Code)
	})

	var added serSpot
	igts.Run("add spot", func() {
		w := igts.request(
			http.MethodPost,
			fmt.Sprintf("/admin/lots/%d/spots", l.ID),
			igts.adminToken,
			map[string]string{"number": "S6"},
		)
		igts.Require().Equal(http.StatusCreated, w.Code)
		igts.decode(w, &added)
		igts.Equal("S6", added.Number)
		lot, ss := igts.lotSpots(l.ID)
		igts.Equal(6, lot.MaxSpots)
		igts.Len(ss, 6)
	})
	igts.Run("duplicate spot number", func() {
		w := igts.request(
			http.MethodPost,
			fmt.Sprintf("/admin/lots/%d/spots", l.ID),
			igts.adminToken,
			map[string]string{"number": "S6"},
		)
		igts.Equal(http.StatusConflict, w.Code)
	})
	igts.Run("override spot status", func() {
		w := igts.request(
			http.MethodPatch,
			fmt.Sprintf("/admin/spots/%d", added.ID),
			igts.adminToken,
			map[string]string{"number": "S6", "status": "Occupied"},
		)
		igts.Require().Equal(http.StatusOK, w.Code)
		lot, _ := igts.lotSpots(l.ID)
		igts.Equal(1, lot.OccupiedSpots)

		w = igts.request(
			http.MethodPatch,
			fmt.Sprintf("/admin/spots/%d", added.ID),
			igts.adminToken,
			map[string]string{"number": "S6b", "status": "Available"},
		)
		igts.Require().Equal(http.StatusOK, w.Code)
		var s serSpot
		igts.decode(w, &s)
		igts.Equal("S6b", s.Number)
		lot, _ = igts.lotSpots(l.ID)
		igts.Equal(0, lot.OccupiedSpots)
	})
	igts.Run("delete spot", func() {
		w := igts.request(
			http.MethodDelete,
			fmt.Sprintf("/admin/spots/%d", added.ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusNoContent, w.Code)
		lot, ss := igts.lotSpots(l.ID)
		igts.Equal(5, lot.MaxSpots)
		igts.Len(ss, 5)
	})
	igts.Run("delete lot", func() {
		w := igts.request(
			http.MethodDelete,
			fmt.Sprintf("/admin/lots/%d", l.ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusNoContent, w.Code)
		w = igts.request(
			http.MethodGet,
			fmt.Sprintf("/admin/lots/%d/spots", l.ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusNotFound, w.Code)
	})
}

func (igts *IntegrationGinTestSuite) TestBookAndRelease() {
	igts.register("parker", "secret-pass")
	token := igts.login("parker", "secret-pass")
	l := igts.addLot("Harbor View", 10, 2)

	var rid int64
	igts.Run("book the lowest numbered spot", func() {
		w := igts.request(
			http.MethodPost, "/reservations", token,
			map[string]string{
				"lot_id": fmt.Sprintf("%d", l.ID),
			},
		)
		igts.Require().Equal(
			http.StatusCreated, w.Code, "body: %s", w.Body.String(),
		)
		var d serDetail
		igts.decode(w, &d)
		igts.Equal("Harbor View", d.LotName)
		igts.Equal("S1", d.SpotNumber)
		igts.True(d.Active)
		igts.Nil(d.LeftAt)
		igts.Nil(d.Cost)
		igts.NotEmpty(d.ParkedAt)
		rid = d.ID

		lot, ss := igts.lotSpots(l.ID)
		igts.Equal(1, lot.OccupiedSpots)
		igts.Equal("Occupied", ss[0].Status)
	})
	igts.Run("one active reservation per user", func() {
		w := igts.request(
			http.MethodPost, "/reservations", token,
			map[string]string{
				"lot_id": fmt.Sprintf("%d", l.ID),
			},
		)
		igts.Equal(http.StatusConflict, w.Code)
		igts.Contains(w.Body.String(), "active reservation")
	})
	igts.Run("active reservation on the dashboard", func() {
		d := igts.dashboard(token)
		igts.Require().Len(d.Active, 1)
		igts.Equal(rid, d.Active[0].ID)
		igts.Empty(d.History)
		igts.Equal(int64(1), d.Stats.TotalReservations)
		igts.Equal(int64(0), d.Stats.CompletedReservations)
	})
	igts.Run("release bills every started hour", func() {
		igts.clock.Advance(90 * time.Minute)
		w := igts.request(
			http.MethodPatch,
			fmt.Sprintf("/reservations/%d", rid),
			token,
			map[string]string{"op": "release"},
		)
		igts.Require().Equal(
			http.StatusOK, w.Code, "body: %s", w.Body.String(),
		)
		var d serDetail
		igts.decode(w, &d)
		igts.False(d.Active)
		igts.NotNil(d.LeftAt)
		igts.Require().NotNil(d.Cost)
		igts.Equal(float64(20), *d.Cost, "90m bills 2 hours at 10/h")

		lot, ss := igts.lotSpots(l.ID)
		igts.Equal(0, lot.OccupiedSpots)
		igts.Equal("Available", ss[0].Status)
	})
	igts.Run("release is not repeatable", func() {
		w := igts.request(
			http.MethodPatch,
			fmt.Sprintf("/reservations/%d", rid),
			token,
			map[string]string{"op": "release"},
		)
		igts.Equal(http.StatusNotFound, w.Code)
	})
	igts.Run("history and stats after release", func() {
		d := igts.dashboard(token)
		igts.Empty(d.Active)
		igts.Require().Len(d.History, 1)
		igts.Equal(rid, d.History[0].ID)
		igts.Equal(int64(1), d.Stats.TotalReservations)
		igts.Equal(int64(1), d.Stats.CompletedReservations)
		igts.Equal(float64(20), d.Stats.TotalSpent)
	})
	igts.Run("strangers cannot release", func() {
		igts.register("stranger", "secret-pass")
		otherToken := igts.login("stranger", "secret-pass")
		w := igts.request(
			http.MethodPost, "/reservations", otherToken,
			map[string]string{
				"lot_id": fmt.Sprintf("%d", l.ID),
			},
		)
		igts.Require().Equal(http.StatusCreated, w.Code)
		var d serDetail
		igts.decode(w, &d)

		w = igts.request(
			http.MethodPatch,
			fmt.Sprintf("/reservations/%d", d.ID),
			token,
			map[string]string{"op": "release"},
		)
		igts.Equal(
			http.StatusNotFound, w.Code,
			"a foreign reservation looks like an absent one",
		)
	})
}

func (igts *IntegrationGinTestSuite) TestLotCapacity() {
	igts.register("early-bird", "secret-pass")
	igts.register("latecomer", "secret-pass")
	earlyToken := igts.login("early-bird", "secret-pass")
	lateToken := igts.login("latecomer", "secret-pass")
	l := igts.addLot("Tiny Corner", 5, 1)

	w := igts.request(
		http.MethodPost, "/reservations", earlyToken,
		map[string]string{"lot_id": fmt.Sprintf("%d", l.ID)},
	)
	igts.Require().Equal(http.StatusCreated, w.Code)

	igts.Run("full lot rejects bookings", func() {
		w := igts.request(
			http.MethodPost, "/reservations", lateToken,
			map[string]string{"lot_id": fmt.Sprintf("%d", l.ID)},
		)
		igts.Equal(http.StatusConflict, w.Code)
		igts.Contains(w.Body.String(), "no available spot")
	})
	igts.Run("full lot leaves the dashboard", func() {
		d := igts.dashboard(lateToken)
		for _, al := range d.AvailableLots {
			igts.NotEqual(l.ID, al.ID, "full lot is not available")
		}
	})
	igts.Run("absent lot rejects bookings", func() {
		w := igts.request(
			http.MethodPost, "/reservations", lateToken,
			map[string]string{"lot_id": "98765"},
		)
		igts.Equal(http.StatusNotFound, w.Code)
	})
}

func (igts *IntegrationGinTestSuite) TestReservedSpotConflicts() {
	igts.register("resident", "secret-pass")
	token := igts.login("resident", "secret-pass")
	l := igts.addLot("Guarded Garage", 5, 1)
	_, ss := igts.lotSpots(l.ID)
	igts.Require().Len(ss, 1)

	w := igts.request(
		http.MethodPost, "/reservations", token,
		map[string]string{"lot_id": fmt.Sprintf("%d", l.ID)},
	)
	igts.Require().Equal(http.StatusCreated, w.Code)
	var d serDetail
	igts.decode(w, &d)

	igts.Run("reserved lot may not be deleted", func() {
		w := igts.request(
			http.MethodDelete,
			fmt.Sprintf("/admin/lots/%d", l.ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusConflict, w.Code)
		igts.Contains(w.Body.String(), "actively parked")
	})
	igts.Run("reserved spot may not be deleted", func() {
		w := igts.request(
			http.MethodDelete,
			fmt.Sprintf("/admin/spots/%d", ss[0].ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusConflict, w.Code)
	})
	igts.Run("reserved spot may not be forced available", func() {
		w := igts.request(
			http.MethodPatch,
			fmt.Sprintf("/admin/spots/%d", ss[0].ID),
			igts.adminToken,
			map[string]string{
				"number": ss[0].Number,
				"status": "Available",
			},
		)
		igts.Equal(http.StatusConflict, w.Code)
		igts.Contains(w.Body.String(), "released by its user")
	})
	igts.Run("released lot may be deleted", func() {
		w := igts.request(
			http.MethodPatch,
			fmt.Sprintf("/reservations/%d", d.ID),
			token,
			map[string]string{"op": "release"},
		)
		igts.Require().Equal(http.StatusOK, w.Code)
		w = igts.request(
			http.MethodDelete,
			fmt.Sprintf("/admin/lots/%d", l.ID),
			igts.adminToken, nil,
		)
		igts.Equal(http.StatusNoContent, w.Code)
	})
}

func (igts *IntegrationGinTestSuite) TestConcurrentBooking() {
	igts.register("racer-one", "secret-pass")
	igts.register("racer-two", "secret-pass")
	tokens := []string{
		igts.login("racer-one", "secret-pass"),
		igts.login("racer-two", "secret-pass"),
	}
	l := igts.addLot("Contended Corner", 5, 1)

	start := make(chan struct{})
	codes := make(chan int, len(tokens))
	var wg sync.WaitGroup
	for _, token := range tokens {
		token := token
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			w := igts.request(
				http.MethodPost, "/reservations", token,
				map[string]string{"lot_id": fmt.Sprintf("%d", l.ID)},
			)
			codes <- w.Code
		}()
	}
	close(start)
	wg.Wait()
	close(codes)

	created, conflicted := 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	igts.Equal(
		1, created, "exactly one booking may claim the last spot",
	)
	igts.Equal(1, conflicted)

	lot, ss := igts.lotSpots(l.ID)
	igts.Equal(1, lot.OccupiedSpots)
	igts.Require().Len(ss, 1)
	igts.Equal("Occupied", ss[0].Status)
}

func (igts *IntegrationGinTestSuite) TestOverview() {
	l1 := igts.addLot("Overview North", 10, 2)
	igts.addLot("Overview South", 10, 3)
	igts.register("overviewer", "secret-pass")
	token := igts.login("overviewer", "secret-pass")
	w := igts.request(
		http.MethodPost, "/reservations", token,
		map[string]string{"lot_id": fmt.Sprintf("%d", l1.ID)},
	)
	igts.Require().Equal(http.StatusCreated, w.Code)

	w = igts.request(
		http.MethodGet, "/admin/overview", igts.adminToken, nil,
	)
	igts.Require().Equal(http.StatusOK, w.Code)
	var ov struct {
		Lots          []serLot `json:"lots"`
		TotalLots     int      `json:"total_lots"`
		TotalSpots    int      `json:"total_spots"`
		TotalOccupied int      `json:"total_occupied"`
	}
	igts.decode(w, &ov)
	igts.Equal(len(ov.Lots), ov.TotalLots)
	igts.GreaterOrEqual(ov.TotalLots, 2)
	igts.GreaterOrEqual(ov.TotalSpots, 5)
	igts.GreaterOrEqual(ov.TotalOccupied, 1)
	total := 0
	occupied := 0
	for _, l := range ov.Lots {
		total += l.MaxSpots
		occupied += l.OccupiedSpots
	}
	igts.Equal(total, ov.TotalSpots)
	igts.Equal(occupied, ov.TotalOccupied)
}
