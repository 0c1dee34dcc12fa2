package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses the :id path parameter; ok is false after a 400 was written.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id "+strconv.Quote(c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
