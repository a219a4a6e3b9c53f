package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/codelab-tools/labgen/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "labgen",
		Usage:                  "Laboratory-work report generator for student source code",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profiles-dir",
				Usage: "Directory holding profile backing files",
				Value: "templates",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Aliases:   []string{"g"},
				Usage:     "Generate a report from a source file",
				ArgsUsage: "<source-file>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "test-data",
						Aliases: []string{"t"},
						Usage:   "Test input (repeat the flag for multiple tests)",
					},
					&cli.StringFlag{
						Name:    "test-file",
						Aliases: []string{"T"},
						Usage:   "File with test inputs separated by '---' lines",
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Student name",
						Value:   "Student",
					},
					&cli.StringFlag{
						Name:    "group",
						Aliases: []string{"g"},
						Usage:   "Student group",
					},
					&cli.StringFlag{
						Name:    "variant",
						Aliases: []string{"v"},
						Usage:   "Assignment variant number",
					},
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Formatting profile name",
						Value:   "default",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the .docx report",
					},
					&cli.StringSliceFlag{
						Name:  "task",
						Usage: "Additional task source file, optionally labelled: path or path=label",
					},
					&cli.StringSliceFlag{
						Name:  "title",
						Usage: "Title page field override: field=value (university, faculty, department, discipline, work_type)",
					},
				},
				Action: generateCommand,
			},
			{
				Name:  "profiles",
				Usage: "Manage formatting profiles",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List available profiles",
						Action: profilesListCommand,
					},
					{
						Name:      "show",
						Usage:     "Show a resolved profile",
						ArgsUsage: "<name>",
						Action:    profilesShowCommand,
					},
					{
						Name:      "create",
						Usage:     "Create a profile from the defaults",
						ArgsUsage: "<name>",
						Action:    profilesCreateCommand,
					},
					{
						Name:      "delete",
						Usage:     "Delete a profile",
						ArgsUsage: "<name>",
						Action:    profilesDeleteCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
