// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"

	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/core/repo"
	"gorm.io/gorm"
)

// These conversions ensure that the adapter types keep implementing
// the core repo interfaces. Such tests should be used when the actual
// implementation does not take a type as its expected interface, so a
// mismatch causes a compilation error instead of some runtime error.
var (
	_ repo.Pool = (*postgres.Pool)(nil)
	_ repo.Conn = (*postgres.Conn)(nil)
	_ repo.Tx   = (*postgres.Tx)(nil)
)

// gormOf ensures that the Queryer constraint exposes the GORM method
// which all generic query functions of the repository packages rely
// on, for connections and transactions alike.
func gormOf[Q postgres.Queryer](ctx context.Context, q Q) *gorm.DB {
	return q.GORM(ctx)
}

var (
	_ = gormOf[*postgres.Conn]
	_ = gormOf[*postgres.Tx]
)
