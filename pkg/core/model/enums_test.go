// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	t.Parallel()
	for _, r := range []model.Role{model.RoleUser, model.RoleAdmin} {
		require.NoError(t, r.Validate())
		parsed, err := model.ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	invalid := model.Role(42)
	var re model.RoleError
	require.ErrorAs(t, invalid.Validate(), &re)
	assert.Equal(t, model.RoleError(42), re)
	assert.Panics(t, func() { _ = invalid.String() })

	parsed, err := model.ParseRole("supervisor")
	assert.ErrorIs(t, err, model.ErrUnknownRole)
	assert.Equal(t, model.RoleInvalid, parsed)
}

func TestSpotStatus(t *testing.T) {
	t.Parallel()
	for _, s := range []model.SpotStatus{
		model.SpotAvailable, model.SpotOccupied,
	} {
		require.NoError(t, s.Validate())
		parsed, err := model.ParseSpotStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	invalid := model.SpotStatus(-1)
	var se model.SpotStatusError
	require.ErrorAs(t, invalid.Validate(), &se)
	assert.Equal(t, model.SpotStatusError(-1), se)
	assert.Panics(t, func() { _ = invalid.String() })

	parsed, err := model.ParseSpotStatus("available")
	assert.ErrorIs(t, err, model.ErrUnknownSpotStatus)
	assert.Equal(t, model.SpotStatusInvalid, parsed)
}
