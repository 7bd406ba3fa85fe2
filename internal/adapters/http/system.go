package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linkmeet/linkmeet/internal/store"
)

// healthHandler reports liveness plus the database connection state.
func healthHandler(mode string, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		if err := st.Ping(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": mode,
			"database":    gin.H{"status": dbStatus},
		})
	}
}
