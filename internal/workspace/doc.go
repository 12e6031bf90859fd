// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workspace provisions the working directory a script runs in.
//
// Each script gets a fresh directory named after the script, holding a copy of the
// script, the program under test and every fixture. Fixtures that are not local
// paths are fetched once per Workspace with go-getter.
package workspace
