// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diff renders the difference between expected and actual command output
// for failure reports.
//
// Renderers never decide whether a check passed, they only format text.
// External renderers that cannot run fall back to the unified diff.
package diff
