package repo

import "context"

type ConnHandler func(context.Context, Conn) error

type Pool interface {
	// Conn acquires a database connection from the pool, passes it to
	// the handler function, and releases it when the handler returns.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close closes the entire pool and all of its idle connections.
	Close() error
}
