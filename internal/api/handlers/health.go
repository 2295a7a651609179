package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/chordchart-api/internal/catalog"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	entries := 0
	var missing []string
	if h.catalog != nil {
		entries = h.catalog.Len()
		missing = h.catalog.Missing()
	}
	if entries == 0 || len(missing) > 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"catalog": gin.H{
			"entries":         entries,
			"missing_on_disk": len(missing),
		},
	})
}
