package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordchart-api/internal/catalog"
)

func getJSON(t *testing.T, handler gin.HandlerFunc) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C_Guitar.png"), []byte("x"), 0o600))

	tests := []struct {
		name   string
		files  []string
		status string
	}{
		{"all present", []string{"C_Guitar.png"}, "healthy"},
		{"entry missing on disk", []string{"C_Guitar.png", "G_Guitar.png"}, "degraded"},
		{"empty catalog", nil, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := getJSON(t, NewHealthHandler(catalog.New(dir, tt.files)).HealthCheck)
			assert.Equal(t, tt.status, resp["status"])

			cat, ok := resp["catalog"].(map[string]interface{})
			require.True(t, ok)
			assert.EqualValues(t, len(tt.files), cat["entries"])
		})
	}
}

func TestGetMetrics(t *testing.T) {
	cat := catalog.New(t.TempDir(), []string{"C_Guitar.png", "C_Piano.png"})

	resp := getJSON(t, NewMetricsHandler("1.2.3", cat, nil).GetMetrics)

	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
	api, ok := resp["api"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, api["catalog_entries"])
	assert.Equal(t, false, api["cloudwatch_enabled"])
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5_000_000_000))
	assert.Equal(t, "2m3.00s", formatUptime(123_000_000_000))
	assert.Equal(t, "1h0m1.00s", formatUptime(3_601_000_000_000))
}
