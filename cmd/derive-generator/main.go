// Package main provides the CLI entrypoint for derive-generator.
//
// derive-generator emits Clone, Debug, equality, hashing and ordering
// functions for Go types:
//   - Parses Go packages (AST + go/types) for structs carrying a //derive: directive
//   - Reads YAML schema files for records, tuples and enums
//   - Generates one <package>_derive.go file per package
//
// Commands: gen | check | dump | watch
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"derive-generator/internal/config"
)

// app is the state shared by all commands of one invocation.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "derive-generator",
		Short: "Generate Clone, Debug, equality, hashing and ordering functions for Go types",
		Long: `derive-generator reads derive directives and generates the functions they request.

Inputs are Go package patterns, whose structs are selected by a doc comment line

    //derive:T; Clone, Debug, PartialEq

or YAML schema files (*.yaml, *.yml), which can also describe enums.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "configuration file")

	root.AddCommand(newGenCmd(a), newCheckCmd(a), newDumpCmd(a), newWatchCmd(a))

	return root
}

// init loads the configuration and builds the logger unless one was
// injected.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	if a.logger != nil {
		return nil
	}

	logger, err := newLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.logger = logger

	return nil
}

func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)

	if useConsole(lc.Format, os.Stderr.Fd()) {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zc.Build()
}

// useConsole picks the console encoder for "console", and for "auto" when
// fd is a terminal.
func useConsole(format string, fd uintptr) bool {
	switch format {
	case "console":
		return true
	case "json":
		return false
	default:
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
