// app/echoServer/jwtx/identity.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"bookstore/util/access"
)

// ClaimsFromToken pulls the verified claims the echo-jwt middleware put
// into the request context.
func ClaimsFromToken(c echo.Context) (jwt.MapClaims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return claims, nil
}

// IdentityFromContext reads the identity stored by the auth middleware.
func IdentityFromContext(c echo.Context) (access.Identity, error) {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return access.Identity{}, errors.New("user_id missing in context")
	}
	rid, ok := c.Get("role_id").(int64)
	if !ok {
		return access.Identity{}, errors.New("role_id missing in context")
	}
	return access.Identity{UserID: uid, Role: access.Role(rid)}, nil
}
