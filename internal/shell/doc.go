// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs one command line through a shell and captures its
// stdout, stderr and exit code.
//
// OSShell starts a system shell as a child process. Builtin interprets the
// command in-process with mvdan.cc/sh, which needs no shell on the host.
// Neither enforces a timeout: a command that never ends stalls the run until
// the context is cancelled.
package shell
