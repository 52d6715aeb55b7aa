package controllers

import (
	"log/slog"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/gin-gonic/gin"
)

// respond writes the success envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps the error to its status code and writes the failure envelope.
// Wrapped internal detail is logged and never sent to the client.
func fail(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Err != nil {
		slog.Error("request failed", "error", e.Err, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(e.Status, gin.H{"success": false, "message": e.Message})
}
