// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for --version.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] may be injected
// with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/planboard/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Anything not injected is filled from the VCS stamp in the binary's
// build info.
package version
