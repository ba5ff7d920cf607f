package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/festify/internal/formatter"
	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Client is the Festify API surface the commands use.
type Client interface {
	services.ArtistService
	Raw(ctx context.Context, method, path string, body []byte) (*services.APIResponse, error)
}

// SpinFunc runs action while showing title.
type SpinFunc func(ctx context.Context, title string, action func(context.Context) error) error

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client Client
	logger *log.Logger
	output io.Writer
	spin   SpinFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Service Client
	Logger  *log.Logger
	Output  io.Writer
	Spinner SpinFunc
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Spinner == nil {
		opts.Spinner = runSpinner
	}
	if opts.Service == nil {
		opts.Service = services.NewFestifyServiceFromConfig(opts.Config.API, opts.Logger)
	}

	return &Runner{
		config: opts.Config,
		client: opts.Service,
		logger: opts.Logger,
		output: opts.Output,
		spin:   opts.Spinner,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		artistsCommand, apiCommand, configCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func runSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := formatter.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
