// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/openpark/parkweb/pkg/adapter/config"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/schema"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres/usersrp"
	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/hash"
	"github.com/openpark/parkweb/pkg/core/model"
	"github.com/openpark/parkweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema and the admin account",
	Long: `Initialize the database schema and the admin account.
All tables, constraints, and indices are created if they do not exist
yet, so an already initialized database is left unchanged. Thereafter,
the default administrator account is created, taking its username,
password, and email from the ADMIN_USERNAME, ADMIN_PASSWORD, and
ADMIN_EMAIL environment variables (or from a .env file) with the
admin, adminpassword, and admin@example.com default values. An
existing account with that username is kept as is.
The database connection information are read from the config file,
which itself is not modified. Everything runs in one transaction, so
a failed initialization leaves nothing behind.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := schema.New(tx).InitSchema(ctx); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return ensureAdmin(ctx, tx, c.Auth.NewHasher())
		})
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	return nil
}

// ensureAdmin creates the default administrator account unless an
// account with the configured admin username exists already.
func ensureAdmin(ctx context.Context, tx repo.Tx, h hash.Hasher) error {
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "adminpassword")
	email := envOr("ADMIN_EMAIL", "admin@example.com")
	q := usersrp.New().Tx(tx)
	_, err := q.ByUsername(ctx, username)
	switch {
	case err == nil:
		return nil
	case cerr.KindOf(err) != cerr.KindNotFound:
		return fmt.Errorf("looking up admin account: %w", err)
	}
	hashed, err := h.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	_, err = q.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	return nil
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func init() {
	dbCmd.AddCommand(initDBCmd)
}
