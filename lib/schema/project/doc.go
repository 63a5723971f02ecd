// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package project defines the project record: the fixed field set
// shown as one row of the planboard grid, the closed enumerated
// domains for priority, status, and the yes/no utility flags, and the
// built-in seed dataset used when no persisted data exists.
//
// Field names double as wire names. The persisted blob is a list of
// records keyed by these names (project_number, project, priority,
// assigned_to, status, notes, idf, bezeq, hot), so a Field value can
// be used both to address a record in memory and to identify a grid
// column.
package project
