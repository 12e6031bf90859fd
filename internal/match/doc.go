// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package match checks the outcome of a command against its declared expectation.
//
// Evaluate is pure: it never renders diffs or prints. A failed check returns an
// error wrapping one of the sentinel kinds; output mismatches are returned as
// *MismatchError so callers can render expected and actual text side by side.
package match
