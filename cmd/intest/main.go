// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the intest command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/intest"
	"github.com/matt-FFFFFF/intest/cmd/intest/run"
	"github.com/matt-FFFFFF/intest/cmd/intest/show"
	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	logLevelFlag = "log-level"
	logJSONFlag  = "log-json"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "intest",
	Description: `intest runs line-oriented test scripts against a command-line program.
Each script runs in a fresh working directory named after the script. Commands are run
through a shell and their stdout, stderr and exit code are checked against the script.`,
	Usage:     "intest [options] test01.in [test02.in ...]",
	ArgsUsage: "<script.in>...",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	Flags: append(run.Flags(),
		&cli.StringFlag{
			Name:     logLevelFlag,
			Usage:    "Set the log level: DEBUG, INFO, WARN or ERROR. Overrides " + ctxlog.EnvVarName() + ".",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        logJSONFlag,
			Usage:       "Write logs to stderr as JSON",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	),
	Before:                before,
	Action:                run.Action,
	ExitErrHandler:        func(context.Context, *cli.Command, error) {},
	EnableShellCompletion: true,
}

// before configures logging from the flags.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if s := cmd.String(logLevelFlag); s != "" {
		lvl, ok := ctxlog.ParseLevel(s)
		if !ok {
			return ctx, cli.Exit(fmt.Sprintf("invalid log level %q", s), 1)
		}

		ctxlog.LevelVar.Set(lvl)
	}

	if cmd.Bool(logJSONFlag) {
		ctx = ctxlog.New(ctx, ctxlog.NewJSONLogger(cmd.Root().ErrWriter))
	}

	return ctx, nil
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", intest.Version, intest.Commit)

	err := rootCmd.Run(ctx, os.Args)

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		return 1
	}

	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(rootCmd.ErrWriter, msg) //nolint:errcheck
		}

		return ec.ExitCode()
	}

	ctxlog.Error(ctx, "command execution failed", "error", err)

	return 1
}

func main() {
	os.Exit(Main())
}
