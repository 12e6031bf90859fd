// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show prints the directives of a script without running it.
package show

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/intest/internal/script"
	"github.com/matt-FFFFFF/intest/internal/symbols"
	"github.com/matt-FFFFFF/intest/internal/workspace"
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"
)

var (
	// ErrReadFile is returned when the script cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrNoFile is returned when no script is given.
	ErrNoFile = errors.New("no script file given")
)

// ShowCmd is the command that prints the directives of a script.
var ShowCmd = New()

// New creates the show command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the directives of a script without running it",
		Description: `Show tokenizes a script and prints one line per directive: its line number,
kind and payload. Variables are not bound, so ${name} references are printed as written.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.StringArg(fileArg)
			if name == "" {
				return cli.Exit(ErrNoFile.Error(), 1)
			}

			file, err := workspace.FS.Open(name)
			if err != nil {
				return cli.Exit(errors.Join(ErrReadFile, err).Error(), 1)
			}
			defer file.Close() // nolint:errcheck

			ds, err := script.All(symbols.NewReader(file, symbols.NewTable()))

			w := cmd.Root().Writer
			for _, d := range ds {
				fmt.Fprintln(w, d) //nolint:errcheck
			}

			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			return nil
		},
	}
}
