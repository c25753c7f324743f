package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID parses the numeric :id path parameter. Only parsed values ever
// reach a query; a non-numeric id is answered like an id that matches no
// row, so the raw string can never leak into SQL.
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
