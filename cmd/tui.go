package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/festify/internal/editor"
	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
	"github.com/desertthunder/festify/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive artist console.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	// Rebuild the API client so its request logs go to the file as well
	client := r.client
	if _, ok := client.(*services.FestifyService); ok {
		client = services.NewFestifyServiceFromConfig(r.config.API, fileLogger)
	}

	opts := ui.Options{Logger: fileLogger}
	switch id := cmd.String("id"); {
	case cmd.Bool("new"):
		opts.StartPath = editor.PathNewArtist
	case id != "":
		opts.StartPath = ui.EditPath(id)
	}

	model := ui.NewModel(ctx, client, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
