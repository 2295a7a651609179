package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/chordchart-api/internal/chart"
	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
	"github.com/Conceptual-Machines/chordchart-api/internal/config"
	"github.com/Conceptual-Machines/chordchart-api/internal/logger"
	"github.com/Conceptual-Machines/chordchart-api/internal/metrics"
	"github.com/Conceptual-Machines/chordchart-api/internal/models"
	"github.com/Conceptual-Machines/chordchart-api/internal/render"
	"github.com/Conceptual-Machines/chordchart-api/internal/web/templates"
)

var sentryMetrics = metrics.NewSentryMetrics()

type ChartHandler struct {
	builder     *chart.Builder
	renderer    *render.Renderer
	recorder    metrics.Recorder
	instruments []string
	maxSections int
	tempDir     string
	maxMemory   int64
}

func NewChartHandler(cfg *config.Config, builder *chart.Builder, renderer *render.Renderer, recorder metrics.Recorder) *ChartHandler {
	return &ChartHandler{
		builder:     builder,
		renderer:    renderer,
		recorder:    recorder,
		instruments: cfg.Instruments,
		maxSections: cfg.MaxSections,
		tempDir:     cfg.TempDir,
		maxMemory:   cfg.MaxUploadBytes,
	}
}

// Generate handles a song submission and returns the chart document
// POST /
func (h *ChartHandler) Generate(c *gin.Context) {
	start := time.Now()

	req, err := h.parseForm(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(c, http.StatusRequestEntityTooLarge, "PayloadTooLarge", err, nil)
			return
		}
		h.reject(c, http.StatusBadRequest, "InvalidForm", err, nil)
		return
	}

	req.Normalize()
	if err := req.Validate(h.instruments); err != nil {
		var missing *models.MissingFieldError
		var invalid *models.InvalidInstrumentError
		switch {
		case errors.As(err, &missing):
			h.reject(c, http.StatusBadRequest, "MissingField", err, gin.H{"field": missing.Field})
		case errors.As(err, &invalid):
			h.reject(c, http.StatusBadRequest, "InvalidInstrument", err, gin.H{"instrument": invalid.Instrument})
		default:
			h.reject(c, http.StatusBadRequest, "InvalidRequest", err, nil)
		}
		return
	}

	result := h.builder.Build(req)

	path, err := h.writeDocument(result)
	if path != "" {
		defer h.cleanup(c, path)
	}
	if err != nil {
		h.recorder.RecordChartGenerated(time.Since(start), len(result.Sections), result.TableCount(), result.MissingCount(), false)
		sentryMetrics.RecordChartGeneration(c.Request.Context(), time.Since(start), result.MissingCount(), false)
		logger.Error("Chart generation failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to generate chart",
			"request_id": c.GetString("request_id"),
		})
		return
	}

	duration := time.Since(start)
	h.recorder.RecordChartGenerated(duration, len(result.Sections), result.TableCount(), result.MissingCount(), true)
	sentryMetrics.RecordChartGeneration(c.Request.Context(), duration, result.MissingCount(), true)
	logger.LogChartRequest(c.Request.Context(), result.Title, duration,
		len(result.Sections), result.TableCount(), result.MissingCount(), logger.WithContext(c))

	c.Header("Content-Type", docxContentType)
	c.FileAttachment(path, filepath.Base(path))
}

// parseForm reads the song fields. Only sections with both a name and a
// chord list are kept; the rest are dropped without error.
func (h *ChartHandler) parseForm(c *gin.Context) (models.SongRequest, error) {
	// ParseMultipartForm reports ErrNotMultipart for urlencoded bodies and
	// drops the underlying read error, so parse the plain form first.
	if err := c.Request.ParseForm(); err != nil {
		return models.SongRequest{}, fmt.Errorf("parse form: %w", err)
	}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(h.maxMemory); err != nil {
			return models.SongRequest{}, fmt.Errorf("parse multipart form: %w", err)
		}
	}

	req := models.SongRequest{
		Title:       c.PostForm("title"),
		Composer:    c.PostForm("composer"),
		Key:         c.PostForm("key"),
		Instruments: c.PostFormArray("instruments"),
	}

	for i := 1; i <= h.maxSections; i++ {
		name := strings.TrimSpace(c.PostForm(fmt.Sprintf("section%d_name", i)))
		chords := strings.TrimSpace(c.PostForm(fmt.Sprintf("section%d_chords", i)))
		if name == "" || chords == "" {
			continue
		}
		req.Sections = append(req.Sections, models.Section{
			Name:   name,
			Chords: chord.SplitList(chords),
		})
	}
	return req, nil
}

// writeDocument renders into a fresh temp file. The returned path is set
// whenever a file was created, so the caller can always remove it.
func (h *ChartHandler) writeDocument(result chart.Chart) (string, error) {
	f, err := os.CreateTemp(h.tempDir, tempFilePattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if err := h.renderer.Write(result, f); err != nil {
		_ = f.Close()
		return path, err
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

func (h *ChartHandler) cleanup(c *gin.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fields := logger.WithContext(c)
		fields["file"] = path
		logger.Warn("Failed to remove temp chart file", fields)
	}
}

// reject answers a client error as JSON, or re-renders the form for browsers
func (h *ChartHandler) reject(c *gin.Context, status int, kind string, err error, extra gin.H) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(status)
		component := templates.SongForm(templates.FormData{
			Instruments: h.instruments,
			Sections:    h.maxSections,
			Error:       err.Error(),
		})
		if renderErr := component.Render(c.Request.Context(), c.Writer); renderErr != nil {
			logger.Error("Failed to render form", renderErr, logger.WithContext(c))
		}
		return
	}

	body := gin.H{
		"error":      err.Error(),
		"kind":       kind,
		"request_id": c.GetString("request_id"),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
