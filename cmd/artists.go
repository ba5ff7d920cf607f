package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/festify/internal/editor"
	"github.com/desertthunder/festify/internal/formatter"
	"github.com/desertthunder/festify/internal/shared"
	"github.com/desertthunder/festify/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ArtistsList prints every artist in the requested format.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	r.logger.Debug("listing artists", "format", format)

	artists, err := r.client.ListArtists(ctx)
	if err != nil {
		return err
	}

	if format == formatter.FormatJSON {
		return r.writeJSON(artists, pretty)
	}

	data, err := formatter.RenderArtists(artists, format, pretty)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// ArtistsGet prints one artist.
func (r *Runner) ArtistsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id is required", shared.ErrMissingArgument)
	}

	artist, err := r.client.GetArtist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.ArtistToText(*artist))
}

// ArtistsEdit loads an artist into an editing session, applies the flags that were set and saves.
func (r *Runner) ArtistsEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id is required", shared.ErrMissingArgument)
	}

	feedback := &cliFeedback{r: r}
	ctrl := editor.NewController(id, editor.Options{
		Service:   r.client,
		Notifier:  feedback,
		Navigator: feedback,
		Logger:    r.logger,
	})
	defer ctrl.Dispose()

	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	if err := applyFieldFlags(ctrl, cmd); err != nil {
		return err
	}

	if !ctrl.Dirty() {
		r.logger.Info("nothing to update", "artist", id)
		return r.writePlain("No changes for artist %s\n", id)
	}
	if !ctrl.Valid() {
		return fmt.Errorf("%w: name and genres need more than 2 characters", editor.ErrInvalidForm)
	}

	return r.spin(ctx, fmt.Sprintf("Saving artist %s...", id), ctrl.Submit)
}

// ArtistsCreate fills a new artist form from the flags and submits it.
func (r *Runner) ArtistsCreate(ctx context.Context, cmd *cli.Command) error {
	feedback := &cliFeedback{r: r}
	ctrl := editor.NewCreateController(editor.Options{
		Service:   r.client,
		Notifier:  feedback,
		Navigator: feedback,
		Logger:    r.logger,
	})
	defer ctrl.Dispose()

	if err := applyFieldFlags(ctrl, cmd); err != nil {
		return err
	}
	if !ctrl.Valid() {
		return fmt.Errorf("%w: --name and --genres need more than 2 characters", editor.ErrInvalidForm)
	}

	return r.spin(ctx, "Creating artist...", ctrl.Submit)
}

// applyFieldFlags merges every field flag the user set into the controller form.
func applyFieldFlags(ctrl *editor.Controller, cmd *cli.Command) error {
	for _, field := range editor.Fields {
		name := string(field)
		if !cmd.IsSet(name) {
			continue
		}
		if err := ctrl.UpdateField(field, cmd.String(name)); err != nil {
			return fmt.Errorf("%w: --%s: %v", shared.ErrInvalidFlag, name, err)
		}
	}
	return nil
}

// ArtistsExport writes artists to disk with the export engine, printing progress as it goes.
func (r *Runner) ArtistsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	engine := tasks.NewExportEngine(r.client, r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, cmd.StringSlice("id"), tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  r.config.API.RateLimit,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\nExported %d/%d artists to %s\n", result.SuccessfulExports, result.TotalArtists, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%d artists failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// cliFeedback reports controller notifications on the runner output.
type cliFeedback struct {
	r *Runner
}

func (f *cliFeedback) Success(msg string) {
	f.r.writePlain("✓ %s\n", msg)
}

func (f *cliFeedback) Failure(msg string) {
	f.r.writePlain("✗ %s\n", msg)
}

func (f *cliFeedback) Navigate(path string) {
	f.r.logger.Debug("navigation requested", "path", path)
}
