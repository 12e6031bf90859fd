// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run is the default action of intest: run a batch of test scripts.
package run

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/intest/internal/config"
	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/diff"
	"github.com/matt-FFFFFF/intest/internal/report"
	"github.com/matt-FFFFFF/intest/internal/runner"
	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/matt-FFFFFF/intest/internal/workspace"
	"github.com/urfave/cli/v3"
)

const (
	configFlag    = "config"
	clearFlag     = "clear"
	shellFlag     = "shell"
	diffFlag      = "diff"
	keepGoingFlag = "keep-going"
	cliExitStr    = ""
)

var (
	// ErrMissingInput is returned when a script file given on the command line does not exist.
	ErrMissingInput = errors.New("input file does not exist")
	// ErrNotAFile is returned when a script path is a directory.
	ErrNotAFile = errors.New("input is not a file")
)

// Flags returns the flags of the run action.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"f"},
			Usage:     "Load configuration from this YAML or HCL file instead of intest.yaml, intest.yml or intest.hcl",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        clearFlag,
			Aliases:     []string{"c"},
			Usage:       "Remove each working directory after its script ran",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     shellFlag,
			Usage:    "Shell used to run commands, or \"" + shell.BuiltinName + "\" for the embedded POSIX shell",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     diffFlag,
			Usage:    "Diff shown for failed checks: " + strings.Join(diff.Modes(), ", "),
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        keepGoingFlag,
			Usage:       "Do not stop the batch when a working directory cannot be set up",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

// Action runs the scripts given as arguments.
func Action(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running scripts")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("configuration loaded", "source", cfg.Source)

	scripts := Filter(cmd.Args().Slice(), cfg.Extension)
	if len(scripts) == 0 {
		logger.Warn("no script files given", "extension", cfg.Extension)
		return nil
	}

	if err := CheckInputs(scripts); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	shellPath, err := shell.Resolve(ctx, cfg.Shell)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("shell resolved", "shell", shellPath)

	renderer, err := diff.New(diff.Mode(cfg.Diff), cfg.DiffTool)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out := cmd.Root().Writer
	rep := report.New(out, cmd.Root().ErrWriter, renderer)

	ws := workspace.New(workspace.Options{
		Root:     cfg.WorkRoot,
		Program:  cfg.Program,
		Fixtures: cfg.Fixtures,
	})

	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to remove fetched fixtures", "error", err)
		}
	}()

	batch := &runner.Batch{
		Exec: &shell.Echo{
			Executor: shell.New(shellPath),
			W:        out,
			Prefix:   cfg.EchoPrefix,
		},
		Workspace:    ws,
		Clear:        cfg.Clear,
		OnSetupError: runner.SetupPolicy(cfg.OnSetupError),
		Report: func(res *runner.Result) {
			rep.Result(ctx, res)
		},
	}

	results, err := batch.Run(ctx, scripts)

	rep.Summary(results)

	if err != nil {
		logger.Error(fmt.Sprintf("batch stopped: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if results.HasError() {
		logger.Info("some scripts failed")
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// loadConfig loads the configuration file and applies the flags on top of it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(clearFlag) {
		cfg.Clear = cmd.Bool(clearFlag)
	}

	if cmd.IsSet(shellFlag) {
		cfg.Shell = cmd.String(shellFlag)
	}

	if cmd.IsSet(diffFlag) {
		cfg.Diff = cmd.String(diffFlag)
	}

	if cmd.Bool(keepGoingFlag) {
		cfg.OnSetupError = string(runner.SetupContinue)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Filter keeps the arguments that end in ext, in order.
func Filter(args []string, ext string) []string {
	scripts := make([]string, 0, len(args))

	for _, a := range args {
		if strings.HasSuffix(a, ext) {
			scripts = append(scripts, a)
		}
	}

	return scripts
}

// CheckInputs returns an error listing every script that is not an existing file.
func CheckInputs(scripts []string) error {
	var result error

	for _, s := range scripts {
		info, err := workspace.FS.Stat(s)

		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingInput, s))
		case info.IsDir():
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrNotAFile, s))
		}
	}

	return result
}
