// Command chordchart renders a chord chart document from a song file or an
// interactive session, using the same catalog and layout as the web service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/chordchart-api/internal/catalog"
	"github.com/Conceptual-Machines/chordchart-api/internal/chart"
	"github.com/Conceptual-Machines/chordchart-api/internal/config"
	"github.com/Conceptual-Machines/chordchart-api/internal/models"
	"github.com/Conceptual-Machines/chordchart-api/internal/render"
)

type options struct {
	songPath    string
	outPath     string
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.songPath, "song", "", "YAML song file")
	flag.StringVar(&opts.outPath, "out", "chord_chart.docx", "output document")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for the song instead of reading a file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	if err := run(context.Background(), opts, cfg, surveyPrompter{}); err != nil {
		if errors.Is(err, ErrAborted) {
			os.Exit(1)
		}
		log.Fatalf("❌ %v", err)
	}
}

func run(ctx context.Context, opts options, cfg *config.Config, p prompter) error {
	var req models.SongRequest
	var err error
	switch {
	case opts.interactive:
		req, err = askSong(ctx, p, cfg.Instruments, cfg.MaxSections)
	case opts.songPath != "":
		req, err = loadSong(opts.songPath)
	default:
		return errors.New("either -song or -interactive is required")
	}
	if err != nil {
		return err
	}

	if dropped := req.LimitSections(cfg.MaxSections); dropped > 0 {
		log.Printf("⚠️  Ignoring %d sections beyond the limit of %d", dropped, cfg.MaxSections)
	}
	req.Normalize()
	if err := req.Validate(cfg.Instruments); err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.CatalogManifest, cfg.AssetsDir,
		catalog.WithRootOnlyInstruments(cfg.RootOnlyInstruments...))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	result := chart.NewBuilder(cat, cfg.GroupsPerRow).Build(req)

	f, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render.New(render.OptionsFromConfig(cfg)).Write(result, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Printf("✅ Wrote %s (%d sections, %d tables, %d missing diagrams)",
		opts.outPath, len(result.Sections), result.TableCount(), result.MissingCount())
	return nil
}

// loadSong reads a YAML song file. Chords may be given as a list or as a
// single comma separated string.
func loadSong(path string) (models.SongRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.SongRequest{}, fmt.Errorf("read song: %w", err)
	}

	var req models.SongRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return models.SongRequest{}, fmt.Errorf("parse song %s: %w", path, err)
	}
	return req, nil
}
