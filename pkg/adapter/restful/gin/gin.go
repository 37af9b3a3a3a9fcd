// Package gin wraps the gin-gonic engine instantiation, so other
// adapter packages can depend on this package for the common handler
// types and middlewares. The request logger middleware is backed by
// the default slog logger, matching the rest of the project logs.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return logger.New(slog.Default())
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
