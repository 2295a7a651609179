package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Note: the service is stateless - every value here is read once at startup
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	CloudWatchEnabled bool   // Push custom chart metrics to CloudWatch

	// Asset store
	AssetsDir           string   // Directory holding chord-diagram images
	CatalogManifest     string   // YAML manifest path, "builtin" for the embedded list, empty to scan AssetsDir
	Instruments         []string // Instrument vocabulary accepted by the form
	RootOnlyInstruments []string // Instruments whose diagrams ignore chord quality (Bass)

	// Layout
	MaxSections      int     // Number of section slots on the form
	GroupsPerRow     int     // Chord groups per table before wrapping
	TableBorders     bool    // Draw single-line borders on every cell
	ImageWidthInches float64 // Width of each embedded chord diagram
	FontName         string  // Font used for title and composer

	// Request handling
	TempDir        string // Where per-request output files are created
	MaxUploadBytes int64  // Upper bound on form submissions
}

const (
	defaultMaxSections      = 3
	defaultGroupsPerRow     = 4
	defaultImageWidthInches = 1.0
	defaultMaxUploadBytes   = 1 << 20
	environmentProduction   = "production"
)

func Load() *Config {
	env := getEnv("ENVIRONMENT", "development")
	return &Config{
		Environment:         env,
		Port:                getEnv("PORT", "8080"),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		CloudWatchEnabled:   getBool("CLOUDWATCH_ENABLED", env == environmentProduction),
		AssetsDir:           getEnv("ASSETS_DIR", "static/images"),
		CatalogManifest:     os.Getenv("CATALOG_MANIFEST"),
		Instruments:         getList("INSTRUMENTS", []string{"Guitar", "Piano", "Bass"}),
		RootOnlyInstruments: getList("ROOT_ONLY_INSTRUMENTS", []string{"Bass"}),
		MaxSections:         getInt("MAX_SECTIONS", defaultMaxSections),
		GroupsPerRow:        getInt("GROUPS_PER_ROW", defaultGroupsPerRow),
		TableBorders:        getBool("TABLE_BORDERS", true),
		ImageWidthInches:    getFloat("IMAGE_WIDTH_INCHES", defaultImageWidthInches),
		FontName:            getEnv("CHART_FONT", "Bodoni MT Black"),
		TempDir:             getEnv("TEMP_DIR", os.TempDir()),
		MaxUploadBytes:      int64(getInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
	}
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getInt parses a positive integer, falling back to the default on bad input
func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %.2f", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %t", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

// getList splits a comma separated variable, dropping blank entries
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
