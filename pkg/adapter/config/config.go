// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the parkweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be accumulated and validated in another
// (possibly non-exported) config struct (or directly in the relevant
// end-component such as a UseCase instance).
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/auth/jwt"
	"github.com/openpark/parkweb/pkg/adapter/config/settings"
	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/adapter/hash/bcrypt"
	"github.com/openpark/parkweb/pkg/adapter/hash/scram"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin"
	"github.com/openpark/parkweb/pkg/core/hash"
	"github.com/openpark/parkweb/pkg/core/repo"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Auth     Auth     // Authentication and credential hashing settings
}

// Load function loads, validates, and normalizes the configuration
// file at the given path and returns its settings as an instance of
// the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized
// in order to ensure that provided settings are acceptable.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
//
// Settings which should be overridden by environment variables, such
// as the authentication secret, are replaced here because they are
// fixed by each execution just like the file contents.
func (c *Config) ValidateAndNormalize() error {
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like parkweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// The .pgpass file in the d.PassDir folder is consulted for the role
// password; it should conform with the pgpass format with lines like
// this:
//
//	host:port:dbname:role:password
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the role name which is
// specified by the `r` argument and the password value which is read
// from the given `path` file. Returned URL has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines which should conform with the pgpass
// files format with lines like this:
//
//	host:port:dbname:role:password
//
// If the `path` file could be read and a password for the asked `r`
// role could be identified, a URL and a nil error will be returned.
// Otherwise, returned string will be empty and error will describe the
// wrapped error condition.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Database instance.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// Gin contains the gin-gonic related configuration settings.
// The Logger and Recovery fields are defined as pointers, so it is
// possible to detect if they are or are not initialized, before they
// are replaced by their default values.
type Gin struct {
	Logger   *bool // Whether to register the request logger middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware

	// TimeZone names the IANA timezone, such as Asia/Kolkata, which
	// timestamps should be converted to before they are serialized in
	// responses. Timestamps are always stored as UTC; this setting
	// only affects their representation. An empty value keeps UTC.
	TimeZone string `yaml:"time-zone,omitempty"`

	loc *time.Location `yaml:"-"`
}

// ValidateAndNormalize resolves the TimeZone name, keeping the UTC
// timezone when it is empty.
func (g *Gin) ValidateAndNormalize() error {
	if g.TimeZone == "" {
		g.loc = time.UTC
		return nil
	}
	loc, err := time.LoadLocation(g.TimeZone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", g.TimeZone, err)
	}
	g.loc = loc
	return nil
}

// Location returns the display timezone, as resolved by the
// ValidateAndNormalize method.
func (g Gin) Location() *time.Location {
	if g.loc == nil {
		return time.UTC
	}
	return g.loc
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Auth contains the settings of the bearer token issuance and the
// user credential hashing mechanism.
type Auth struct {
	// Secret is the shared secret which signs the bearer tokens.
	// The AUTH_SECRET environment variable, when set, overrides this
	// field, so the secret may be kept out of the config file.
	Secret string `yaml:"secret,omitempty"`

	// TokenTTL bounds the lifetime of issued bearer tokens. A nil
	// value takes the 24h default. The optional minimum and maximum
	// settings clamp it into an acceptable range.
	TokenTTL    *settings.Duration `yaml:"token-ttl,omitempty"`
	MinTokenTTL *settings.Duration `yaml:"token-ttl-minimum,omitempty"`
	MaxTokenTTL *settings.Duration `yaml:"token-ttl-maximum,omitempty"`

	// HashMethod specifies the user credential hashing mechanism.
	// Currently, the bcrypt, scram-sha-256, and scram-sha-1 methods
	// are supported. The bcrypt is the default value.
	HashMethod string `yaml:"hash-method,omitempty"`

	// hasher is instantiated based on the HashMethod and is exposed
	// by the NewHasher method, so the users use case may hash and
	// verify credentials properly.
	hasher hash.Hasher `yaml:"-"`
}

// ValidateAndNormalize validates the auth settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (a *Auth) ValidateAndNormalize() error {
	if s := os.Getenv("AUTH_SECRET"); s != "" {
		a.Secret = s
	}
	if a.TokenTTL == nil {
		d := settings.Duration(24 * time.Hour)
		a.TokenTTL = &d
	}
	if err := settings.VerifyRange(
		&a.TokenTTL, a.MinTokenTTL, a.MaxTokenTTL,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(token-ttl=%v, minb=%v, maxb=%v): %w",
			err.Value, a.MinTokenTTL, a.MaxTokenTTL, err,
		)
	}
	switch hm := a.HashMethod; hm {
	case "scram-sha-1":
		a.hasher = scram.SHA1()
	case "scram-sha-256":
		a.hasher = scram.SHA256()
	case "":
		a.HashMethod = "bcrypt"
		fallthrough
	case "bcrypt":
		a.hasher = bcrypt.New()
	default:
		return fmt.Errorf(
			"unsupported credential hashing method: %q", hm,
		)
	}
	return nil
}

// NewHasher returns the credential hashing mechanism which was
// instantiated based on the HashMethod setting. The
// ValidateAndNormalize method is expected to be called beforehand.
func (a Auth) NewHasher() hash.Hasher {
	return a.hasher
}

// NewTokenIssuer instantiates a bearer token issuer using the Secret
// and TokenTTL settings.
func (a Auth) NewTokenIssuer() (*jwt.Issuer, error) {
	return jwt.New(a.Secret, time.Duration(*a.TokenTTL))
}
