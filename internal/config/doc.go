// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the intest configuration file.
//
// The file is optional and may be YAML or HCL. Values left out keep their defaults,
// and command line flags override what the file sets.
package config
