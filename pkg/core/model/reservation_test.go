// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestBilledHours(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name    string
		elapsed time.Duration
		hours   int64
	}{
		{"negative", -time.Minute, 0},
		{"zero", 0, 0},
		{"one second", time.Second, 1},
		{"half an hour", 30 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"one hour and a second", time.Hour + time.Second, 2},
		{"exactly two hours", 2 * time.Hour, 2},
		{"a day and a minute", 24*time.Hour + time.Minute, 25},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.hours, model.BilledHours(tc.elapsed))
		})
	}
}

func TestBill(t *testing.T) {
	t.Parallel()
	parkedAt := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name  string
		leave time.Time
		price float64
		cost  float64
	}{
		{
			name:  "one second bills one hour",
			leave: parkedAt.Add(time.Second),
			price: 10,
			cost:  10,
		},
		{
			name:  "exact hours bill without rounding up",
			leave: parkedAt.Add(2 * time.Hour),
			price: 12.5,
			cost:  25,
		},
		{
			name:  "started hour bills completely",
			leave: parkedAt.Add(time.Hour + time.Minute),
			price: 12.5,
			cost:  25,
		},
		{
			name:  "cost is rounded to two decimals",
			leave: parkedAt.Add(3 * time.Hour),
			price: 3.333,
			cost:  10,
		},
		{
			name:  "skewed clock bills nothing",
			leave: parkedAt.Add(-time.Minute),
			price: 10,
			cost:  0,
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cost := model.Bill(parkedAt, tc.leave, tc.price)
			assert.Equal(t, tc.cost, cost)
		})
	}
}

func TestFreeSpots(t *testing.T) {
	t.Parallel()
	l := &model.Lot{MaxSpots: 5, OccupiedSpots: 2}
	assert.Equal(t, 3, l.FreeSpots())
	l.OccupiedSpots = 5
	assert.Equal(t, 0, l.FreeSpots())
}
