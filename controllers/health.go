package controllers

import (
	"net/http"

	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/kv"
	"github.com/gin-gonic/gin"
)

// HealthController reports whether the service and its backends are up
type HealthController struct {
	db db.Database
	kv kv.KeyValueStore
}

func NewHealthController(database db.Database, store kv.KeyValueStore) *HealthController {
	return &HealthController{db: database, kv: store}
}

// Health pings the document store and the cache and reports their status
func (ctrl *HealthController) Health(c *gin.Context) {
	status := http.StatusOK
	mongo, redis := "ok", "ok"

	if err := ctrl.db.Ping(c.Request.Context()); err != nil {
		mongo = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := ctrl.kv.Ping(); err != nil {
		redis = "unreachable"
		status = http.StatusServiceUnavailable
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"mongo":  mongo,
		"redis":  redis,
	})
}
