// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the command-line plumbing shared by the planboard
// binary: categorized errors that map to exit codes, the stderr
// logger, a fan-out log handler, and credential prompts.
package cli
