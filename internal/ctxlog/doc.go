// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The default logger writes to stderr with a pretty console handler. Its level
// is read from the <EXECUTABLE>_LOG_LEVEL environment variable, e.g.
// INTEST_LOG_LEVEL=DEBUG, and defaults to WARN.
package ctxlog
