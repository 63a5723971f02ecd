// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// planboard is a terminal project-management board: an editable grid
// of project records with inline cell editors, role-based edit
// permissions, and durable storage behind a pluggable blob backend.
//
// Startup reads one YAML config file (--config or PLANBOARD_CONFIG),
// signs the operator in against the configured user directory, loads
// the record list (seeding it on first run), and hands the terminal to
// the grid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/planboard/cmd/planboard/cli"
	"github.com/bureau-foundation/planboard/lib/actor"
	"github.com/bureau-foundation/planboard/lib/blobstore"
	"github.com/bureau-foundation/planboard/lib/codec"
	"github.com/bureau-foundation/planboard/lib/config"
	"github.com/bureau-foundation/planboard/lib/gridui"
	"github.com/bureau-foundation/planboard/lib/permission"
	"github.com/bureau-foundation/planboard/lib/recordstore"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/version"
)

func main() {
	err := run(os.Args[1:])
	code, printMessage := cli.ExitCode(err)
	if printMessage {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

type options struct {
	configPath   string
	email        string
	passwordFile string
	logOutput    string
	noColor      bool
}

func run(args []string) error {
	// Handle --version before flag parsing to match the other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Print(os.Stdout, "planboard")
		return nil
	}

	var opts options
	flagSet := pflag.NewFlagSet("planboard", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to planboard.yaml (default: $"+config.EnvVar+")")
	flagSet.StringVar(&opts.email, "email", "", "sign-in email (prompted when omitted)")
	flagSet.StringVar(&opts.passwordFile, "password-file", "", `read the password from this file ("-" or empty prompts)`)
	flagSet.StringVar(&opts.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "render without colour")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err).WithHint("see planboard --help")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return cli.Validation("unexpected argument: %s", rest[0])
	}

	logger := cli.NewCommandLogger(slog.LevelWarn)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.noColor || cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	session, err := signIn(cfg.Users.File, opts.email, opts.passwordFile, os.Stdin, os.Stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Everything after this point logs to the status line, and to the
	// --log-output file when one is given.
	var tee slog.Handler
	if opts.logOutput != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(opts.logOutput)
		if err != nil {
			return err
		}
		defer closeFile()
		tee = fileHandler
	}
	tuiHandler := gridui.NewTUILogHandler(slog.LevelWarn, tee)
	boardLogger := slog.New(tuiHandler)

	board, err := openBoard(ctx, cfg, session, boardLogger)
	if err != nil {
		return err
	}
	defer board.close(logger)

	program := tea.NewProgram(board.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	tuiHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return cli.Internal("running the board: %w", err)
	}
	return nil
}

// loadConfig loads, validates, and prepares the configuration. An
// empty path falls back to the environment variable.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("config: %w", err)
		}
		return nil, cli.Validation("config: %w", err).
			WithHint("pass --config or set " + config.EnvVar)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("config: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, cli.Internal("config: %w", err)
	}
	return cfg, nil
}

// signIn loads the user directory and authenticates the operator,
// prompting for whatever the flags did not supply.
func signIn(usersFile, email, passwordFile string, input io.Reader, output io.Writer) (*actor.Session, error) {
	directory, err := actor.LoadDirectory(usersFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%w", err).
				WithHint("create " + usersFile + " or point users.file at an existing directory")
		}
		return nil, cli.Validation("%w", err)
	}

	if email == "" {
		email, err = cli.PromptLine(input, output, "Email: ")
		if err != nil {
			return nil, err
		}
	}
	password, err := cli.ReadPassword(passwordFile)
	if err != nil {
		return nil, err
	}

	session := actor.NewSession(directory)
	if _, err := session.Login(email, password); err != nil {
		if errors.Is(err, actor.ErrInvalidCredentials) {
			return nil, cli.Forbidden("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	return session, nil
}

// board owns everything the grid runs on, so run can release it in
// one deferred call.
type board struct {
	blobs blobstore.Store
	store *recordstore.Store
	model gridui.Model
}

func openBoard(ctx context.Context, cfg *config.Config, actors actor.Provider, logger *slog.Logger) (*board, error) {
	seed := project.DefaultRecords
	if cfg.Seed.File != "" {
		records, err := project.LoadSeedFile(cfg.Seed.File)
		if err != nil {
			return nil, cli.Validation("seed: %w", err)
		}
		seed = func() []project.Record { return records }
	}

	blobs, err := blobstore.Open(ctx, cfg.BlobOptions(logger))
	if err != nil {
		return nil, cli.Transient("opening %s store: %w", cfg.Store.Backend, err)
	}

	store, err := recordstore.New(recordstore.Config{
		Blobs:  blobs,
		Key:    cfg.Store.Key,
		Format: codec.Format(cfg.Store.Format),
		Seed:   seed,
		Logger: logger,
	})
	if err != nil {
		blobs.Close()
		return nil, cli.Validation("%w", err)
	}
	if err := store.Load(ctx); err != nil {
		blobs.Close()
		return nil, cli.Transient("loading records: %w", err)
	}

	flash, err := cfg.FlashDuration()
	if err != nil {
		blobs.Close()
		return nil, cli.Validation("config: %w", err)
	}
	model, err := gridui.NewModel(gridui.Config{
		Store:         store,
		Actors:        actors,
		Policy:        permission.Policy{AllowUnassigned: cfg.Policy.AllowUnassigned},
		PageSize:      cfg.UI.PageSize,
		FlashDuration: flash,
		Context:       ctx,
		Logger:        logger,
	})
	if err != nil {
		blobs.Close()
		return nil, cli.Internal("%w", err)
	}
	logger.Debug("board opened", "backend", cfg.Store.Backend, "records", store.Len())
	return &board{blobs: blobs, store: store, model: model}, nil
}

func (b *board) close(logger *slog.Logger) {
	b.model.Close()
	if err := b.blobs.Close(); err != nil {
		logger.Warn("closing store", "error", err)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `planboard: terminal project board.

Reads the YAML config named by --config or $%s, signs in against the
configured user directory, and opens the project grid.

Usage:
  planboard [flags]

Examples:
  # Open the board, prompting for credentials
  planboard --config ~/.config/planboard.yaml

  # Non-interactive sign-in with a log file
  planboard --email dana@example.com --password-file ~/.planboard-pass --log-output /tmp/planboard.log

Flags:
`, config.EnvVar)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
