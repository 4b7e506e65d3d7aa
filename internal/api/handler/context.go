package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// actor is the authenticated caller extracted from the JWT claims.
type actor struct {
	ID   string
	Role domain.Role
	Name string
}

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user_id
// and a known role prove the middleware ran and the token is operationally
// usable.
func ctxActor(c echo.Context) (actor, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)

	if id == "" || !domain.Role(role).Valid() {
		return actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor{ID: id, Role: domain.Role(role), Name: name}, nil
}
