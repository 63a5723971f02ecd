// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package actor models the authenticated identity that edits the
// board: a username plus a role (admin or standard).
//
// Consumers depend on the [Provider] interface and re-query it on
// every decision; nothing in the editing core caches the current
// actor. [Session] is the production provider, backed by a
// [Directory] of users loaded from a YAML file with bcrypt password
// hashes. [StaticProvider] is a settable provider for tests and
// embedding.
package actor
