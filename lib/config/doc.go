// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the planboard YAML configuration.
//
// Configuration comes from exactly one file, named by the
// PLANBOARD_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no fallback search.
//
// The file may carry development and production sections that
// override the store, policy, and ui sections when [Config].Environment
// matches. After loading, ${HOME}, ${PLANBOARD_DATA} (paths.data), and
// ${VAR:-default} are expanded in path fields.
//
// Key exports:
//
//   - [Config] -- paths, store, users, seed, policy, and ui sections
//   - [Default] -- zero-values the file is merged onto
//   - [Load] and [LoadFile] -- the two entry points
//   - [Config.Validate] -- rejects unknown backends, formats, and
//     compressions
package config
