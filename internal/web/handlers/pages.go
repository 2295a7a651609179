package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/chordchart-api/internal/config"
	"github.com/Conceptual-Machines/chordchart-api/internal/logger"
	"github.com/Conceptual-Machines/chordchart-api/internal/web/templates"
)

type WebHandler struct {
	instruments []string
	sections    int
}

func NewWebHandler(cfg *config.Config) *WebHandler {
	return &WebHandler{
		instruments: cfg.Instruments,
		sections:    cfg.MaxSections,
	}
}

// Home renders the song entry form
func (h *WebHandler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	component := templates.SongForm(templates.FormData{
		Instruments: h.instruments,
		Sections:    h.sections,
	})
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render form", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
