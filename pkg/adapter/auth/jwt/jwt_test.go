// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jwt_test

import (
	"testing"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/auth/jwt"
	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := jwt.New("", time.Hour)
	assert.Error(t, err, "empty secret must be rejected")
	_, err = jwt.New("test-secret", 0)
	assert.Error(t, err, "non-positive ttl must be rejected")
	_, err = jwt.New("test-secret", time.Hour)
	assert.NoError(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()
	iss, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := iss.Issue(42, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := iss.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestUniqueTokens(t *testing.T) {
	t.Parallel()
	iss, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)
	t1, err := iss.Issue(1, model.RoleUser)
	require.NoError(t, err)
	t2, err := iss.Issue(1, model.RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2, "each token must take a unique jti")
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()
	iss, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)
	signed, err := iss.Issue(42, model.RoleUser)
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		tampered := signed[:len(signed)-2] + "xy"
		_, err := iss.Verify(tampered)
		require.Error(t, err)
		assert.Equal(t, cerr.KindAuthentication, cerr.KindOf(err))
	})
	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		other, err := jwt.New("another-secret", time.Hour)
		require.NoError(t, err)
		_, err = other.Verify(signed)
		require.Error(t, err)
		assert.Equal(t, cerr.KindAuthentication, cerr.KindOf(err))
	})
	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		shortLived, err := jwt.New("test-secret", time.Nanosecond)
		require.NoError(t, err)
		signed, err := shortLived.Issue(42, model.RoleUser)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = shortLived.Verify(signed)
		require.Error(t, err)
		assert.Equal(t, cerr.KindAuthentication, cerr.KindOf(err))
	})
	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := iss.Verify("not.a.token")
		require.Error(t, err)
		assert.Equal(t, cerr.KindAuthentication, cerr.KindOf(err))
	})
}
