package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
	"github.com/Conceptual-Machines/chordchart-api/internal/models"
)

// ErrAborted is returned when the user interrupts an interactive session
var ErrAborted = errors.New("aborted")

// prompter asks the questions needed to fill in a song
type prompter interface {
	Input(ctx context.Context, message string, required bool) (string, error)
	MultiSelect(ctx context.Context, message string, options []string) ([]string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message string, required bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(&survey.Input{Message: message}, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) MultiSelect(ctx context.Context, message string, options []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// askSong collects the same fields as the web form. Sections left blank
// are skipped.
func askSong(ctx context.Context, p prompter, instruments []string, maxSections int) (models.SongRequest, error) {
	var req models.SongRequest
	var err error

	if req.Title, err = p.Input(ctx, "Song title:", true); err != nil {
		return req, err
	}
	if req.Composer, err = p.Input(ctx, "Composer:", true); err != nil {
		return req, err
	}
	if req.Key, err = p.Input(ctx, "Key:", true); err != nil {
		return req, err
	}
	if req.Instruments, err = p.MultiSelect(ctx, "Instruments:", instruments); err != nil {
		return req, err
	}

	for i := 1; i <= maxSections; i++ {
		name, err := p.Input(ctx, fmt.Sprintf("Section %d name (blank to skip):", i), false)
		if err != nil {
			return req, err
		}
		if name == "" {
			continue
		}
		chords, err := p.Input(ctx, fmt.Sprintf("%s chords (comma separated):", name), false)
		if err != nil {
			return req, err
		}
		req.Sections = append(req.Sections, models.Section{Name: name, Chords: chord.SplitList(chords)})
	}
	return req, nil
}
