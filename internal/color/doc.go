// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether ANSI colour output should be used and wraps
// strings in SGR escape codes.
//
// Colour is disabled when NO_COLOR is set, forced when FORCE_COLOR is set, and
// otherwise enabled only when stdout is a terminal (golang.org/x/term).
package color
