// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package symbols holds the variables of one script run and rewrites
// `${name}` references in script lines.
package symbols
