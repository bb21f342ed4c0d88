package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pinger is satisfied by the redis client
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db    *gorm.DB
	redis Pinger
}

// NewHealthController takes redis as nil when carts live in memory.
func NewHealthController(db *gorm.DB, redis Pinger) *HealthController {
	return &HealthController{db: db, redis: redis}
}

// Health reports the database and cart storage status
// GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if sqlDB, err := ctrl.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	switch {
	case ctrl.redis == nil:
		checks["cart_storage"] = "memory"
	case ctrl.redis.Ping(ctx) != nil:
		// carts keep working from memory, so this does not fail the check
		checks["cart_storage"] = "redis down"
	default:
		checks["cart_storage"] = "redis"
	}

	healthStatus := "healthy"
	if status != http.StatusOK {
		healthStatus = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":  healthStatus,
		"message": "Casa Viva API is running",
		"checks":  checks,
	})
}
