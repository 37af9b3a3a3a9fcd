// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bcrypt_test

import (
	"testing"

	"github.com/openpark/parkweb/pkg/adapter/hash/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()
	h := bcrypt.New()
	hashed, err := h.Hash("some-password")
	require.NoError(t, err)
	require.NotEqual(t, "some-password", hashed)

	ok, err := h.Verify("some-password", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("another-password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyPassword(t *testing.T) {
	t.Parallel()
	h := bcrypt.New()
	_, err := h.Hash("")
	assert.Error(t, err)
}

func TestMalformedHash(t *testing.T) {
	t.Parallel()
	h := bcrypt.New()
	_, err := h.Verify("some-password", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
