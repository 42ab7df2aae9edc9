package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness by running a trivial query against
// storage. A failing query means the service cannot do useful work, so
// the endpoint answers 503.
func HealthCheck(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var one int
		if err := db.QueryRowContext(c.Request.Context(), `SELECT 1`).Scan(&one); err != nil {
			log.Printf("health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
