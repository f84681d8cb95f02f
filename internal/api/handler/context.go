package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the token payload injected by the Auth middleware and
// fast-fails before any service call: an empty id means the middleware did
// not run or the token carried no usable identity.
func ctxIdentity(c echo.Context) (id, role string, err error) {
	id, _ = c.Get("user_id").(string)
	if id == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get("role").(string)
	return id, role, nil
}
