// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware provides the authentication middlewares which
// guard the REST API route groups. The Authenticate middleware
// verifies the bearer token of each request and records the conveyed
// identity in the request context, so handlers can query it with the
// UserID and Role functions. The RequireAdmin middleware additionally
// rejects non-admin identities.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openpark/parkweb/pkg/adapter/auth/jwt"
	"github.com/openpark/parkweb/pkg/adapter/restful/gin/serdser"
	"github.com/openpark/parkweb/pkg/core/model"
)

const (
	userIDKey = "auth-user-id"
	roleKey   = "auth-user-role"
)

// Authenticate verifies the Authorization header of each request with
// the given token issuer. Requests without a valid bearer token are
// rejected with a 401 status code and do not reach the handlers.
func Authenticate(iss *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "a bearer token is required",
			})
			return
		}
		claims, err := iss.Verify(token)
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects requests of non-admin identities with a 403
// status code. It must be registered after the Authenticate
// middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "admin access is required",
			})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user identifier of the request.
// It panics when the Authenticate middleware did not run, as that
// indicates a route registration error.
func UserID(c *gin.Context) int64 {
	return c.MustGet(userIDKey).(int64)
}

// Role returns the authenticated user role of the request.
// It panics when the Authenticate middleware did not run, as that
// indicates a route registration error.
func Role(c *gin.Context) model.Role {
	return c.MustGet(roleKey).(model.Role)
}
