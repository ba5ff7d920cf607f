// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/festify/internal/editor"
	"github.com/urfave/cli/v3"
)

// artistsCommand handles artist operations
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artists",
		Aliases: []string{"artist", "a"},
		Usage:   "List, inspect, create and edit artists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all artists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, csv, md)",
						Value:   "text",
					},
				},
				Action: r.ArtistsList,
			},
			{
				Name:  "get",
				Usage: "Show one artist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ArtistsGet,
			},
			{
				Name:  "edit",
				Usage: "Update fields of an artist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  artistFieldFlags(),
				Action: r.ArtistsEdit,
			},
			{
				Name:   "create",
				Usage:  "Create an artist from the field flags",
				Flags:  artistFieldFlags(),
				Action: r.ArtistsCreate,
			},
			{
				Name:  "export",
				Usage: "Export artists to one file each plus a manifest",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Artist id to export (repeatable, default: all)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, md, text)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: festify_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent writers",
						Value: 5,
					},
				},
				Action: r.ArtistsExport,
			},
		},
	}
}

// artistFieldFlags returns one flag per editable artist field.
func artistFieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  string(editor.FieldName),
			Usage: "Artist name",
		},
		&cli.StringFlag{
			Name:  string(editor.FieldGenres),
			Usage: "Comma separated genres",
		},
		&cli.StringFlag{
			Name:  string(editor.FieldCountry),
			Usage: "ISO 3166 country code",
		},
		&cli.StringFlag{
			Name:  string(editor.FieldListeners),
			Usage: "Monthly listeners",
		},
		&cli.StringFlag{
			Name:  string(editor.FieldStatus),
			Usage: "Status (active or draft)",
		},
		&cli.StringFlag{
			Name:  string(editor.FieldBiography),
			Usage: "Artist biography",
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the Festify API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "put",
				Usage: "Direct PUT with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPut,
			},
		},
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config.toml populated with defaults",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive artist console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Open the editor for this artist",
			},
			&cli.BoolFlag{
				Name:  "new",
				Usage: "Open the form for a new artist",
			},
		},
		Action: r.TUI,
	}
}
