package api

import (
	"net/http"

	"container_loading/internal/app/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError answers with the status and kind of err.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		logrus.Infof("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{
		"error":       apperr.Kind(err),
		"description": err.Error(),
	})
}

func badRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":       "validation_error",
		"description": description,
	})
}
