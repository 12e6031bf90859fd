// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner runs test scripts.
//
// An Orchestrator runs the directives of one script in file order and stops at the
// first failure. A Batch runs many scripts one after another, each in its own work
// directory with its own variables.
package runner
