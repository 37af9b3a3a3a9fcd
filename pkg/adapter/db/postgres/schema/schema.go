// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema owns the database schema of the parkweb project.
// It can initialize a fresh database with the users, parking_lots,
// parking_spots, and parking_reservations tables within a caller
// provided transaction, so a failed initialization leaves nothing
// behind.
package schema

import (
	"context"
	"fmt"

	"github.com/openpark/parkweb/pkg/core/repo"
)

// Initializer struct provides the database schema initialization
// logic. Each instance wraps and uses a single transaction, but the
// caller is responsible to commit that transaction in order to
// finalize the initialization results.
type Initializer struct {
	tx repo.Tx
}

// New creates a new Initializer instance, wrapping the given tx
// database transaction.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// InitSchema creates all tables, constraints, and indices if they do
// not exist yet. An already initialized database is left unchanged.
//
// The parking_spots rows are owned by their parking_lots row and the
// parking_reservations rows are cascaded away with their spot or
// user. Two partial unique indices guarantee that one user holds at
// most one active reservation and one spot is referenced by at most
// one active reservation, whatever the upper layers do.
func (ini *Initializer) InitSchema(ctx context.Context) error {
	if _, err := ini.tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user'
        CHECK (role IN ('user', 'admin')),
    email TEXT UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS parking_lots (
    id BIGSERIAL PRIMARY KEY,
    prime_location_name TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    pin_code TEXT NOT NULL,
    price_per_hour DOUBLE PRECISION NOT NULL
        CHECK (price_per_hour >= 0),
    maximum_number_of_spots INTEGER NOT NULL
        CHECK (maximum_number_of_spots >= 0),
    current_occupied_spots INTEGER NOT NULL DEFAULT 0
        CHECK (current_occupied_spots >= 0
            AND current_occupied_spots <= maximum_number_of_spots),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS parking_spots (
    id BIGSERIAL PRIMARY KEY,
    lot_id BIGINT NOT NULL
        REFERENCES parking_lots (id) ON DELETE CASCADE,
    spot_number TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'Available'
        CHECK (status IN ('Available', 'Occupied')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (lot_id, spot_number)
);

CREATE TABLE IF NOT EXISTS parking_reservations (
    id BIGSERIAL PRIMARY KEY,
    spot_id BIGINT NOT NULL
        REFERENCES parking_spots (id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL
        REFERENCES users (id) ON DELETE CASCADE,
    parking_timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
    leaving_timestamp TIMESTAMPTZ,
    total_cost DOUBLE PRECISION,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS parking_reservations_active_user
    ON parking_reservations (user_id) WHERE is_active;

CREATE UNIQUE INDEX IF NOT EXISTS parking_reservations_active_spot
    ON parking_reservations (spot_id) WHERE is_active;
`
