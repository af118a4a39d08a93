// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	fshcli "github.com/marcelocantos/fsh/internal/cli"
	"github.com/marcelocantos/fsh/internal/config"
	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/mcpserver"
	"github.com/marcelocantos/fsh/internal/pipeline"
	"github.com/marcelocantos/fsh/internal/script"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the fsh command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := 0
	app := newApp(&code, stdout, stderr)
	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

func newApp(code *int, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "fsh",
		Usage:     "a small file shell with pipes and redirects",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are reported through code, never by exiting here.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file path",
				Value: config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "run one command line and exit",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "starting directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   "suppress all log output",
			},
			&cli.BoolFlag{
				Name:  "no-startup",
				Usage: "skip the startup script",
			},
		},
		Action: func(c *cli.Context) error {
			*code = runShell(c, stdout, stderr)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "serve the shell as MCP tools on stdio",
				Action: func(c *cli.Context) error {
					*code = runMCP(c, stderr)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list verbs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tier", Usage: "only verbs of this tier"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return cli.Exit(err, 1)
					}
					*code = fshcli.RunList(fshcli.NewRegistry(cfg), stdout, c.String("tier"))
					return nil
				},
			},
			{
				Name:      "help",
				Usage:     "show help for fsh or a verb",
				ArgsUsage: "[verb]",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return cli.Exit(err, 1)
					}
					*code = fshcli.RunHelp(fshcli.NewRegistry(cfg), stdout, c.Args().Slice())
					return nil
				},
			},
			{
				Name:      "audit",
				Usage:     "verify or show the audit log",
				ArgsUsage: "<verify|show [n]>",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return cli.Exit(err, 1)
					}
					*code = fshcli.RunAudit(afero.NewOsFs(), stdout, cfg.Audit.Path, c.Args().Slice())
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "show version",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(stdout, "fsh %s\n", version)
					return nil
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFrom(afero.NewOsFs(), c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config) logger.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := cfg.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	return logger.NewConsole(logger.ParseLevel(level))
}

// runShell runs one line with -c (or trailing arguments), otherwise the
// interactive shell.
func runShell(c *cli.Context, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(c)
	if err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		return 1
	}
	log := newLogger(c, cfg)
	log.Debug("loaded config from %s", c.String("config"))

	engine, err := fshcli.NewEngine(fshcli.Options{
		Dir:     c.String("dir"),
		Config:  cfg,
		Log:     log,
		Console: stdout,
		Diag:    stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		return 1
	}
	defer engine.Close()

	ctx := c.Context
	if !c.Bool("no-startup") && cfg.Shell.Startup != "" {
		err := script.ExecFile(ctx, engine.Env().Session.Fs(), engine, log, cfg.Shell.Startup)
		if errors.Is(err, pipeline.ErrExit) {
			return 0
		}
		if err != nil {
			log.Warn("startup script failed: %v", err)
		}
	}

	line := c.String("command")
	if line == "" && c.Args().Present() {
		line = strings.Join(c.Args().Slice(), " ")
	}
	if line != "" {
		return fshcli.RunLine(ctx, engine, stderr, line)
	}
	return fshcli.RunREPL(ctx, engine, cfg.Shell, log, stdout, stderr)
}

func runMCP(c *cli.Context, stderr io.Writer) int {
	cfg, err := loadConfig(c)
	if err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		return 1
	}
	log := newLogger(c, cfg)

	// Results go back to the client; nothing is printed to stdout, which
	// carries the protocol.
	engine, err := fshcli.NewEngine(fshcli.Options{
		Dir:     c.String("dir"),
		Config:  cfg,
		Log:     log,
		Console: io.Discard,
		Diag:    io.Discard,
		NoPager: true,
	})
	if err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		return 1
	}
	defer engine.Close()

	if err := mcpserver.New(engine, log, version).Serve(); err != nil {
		fmt.Fprintf(stderr, "fsh mcp: %v\n", err)
		return 2
	}
	return 0
}
