// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package permission decides which cells an actor may edit.
//
// The rules are deliberately small: admins edit everything; nobody
// else may reassign a record; a standard actor edits the remaining
// fields only on records assigned to them. Decisions are pure
// functions of their arguments and are re-evaluated on every click.
package permission

import (
	"github.com/bureau-foundation/planboard/lib/actor"
	"github.com/bureau-foundation/planboard/lib/schema/project"
)

// Policy holds the knobs the rules expose. The zero value is the
// default policy.
type Policy struct {
	// AllowUnassigned lets standard actors edit records whose
	// assignee is empty. Off by default: "only records assigned to
	// you" is read literally.
	AllowUnassigned bool
}

// CanEdit reports whether the actor may edit the field of the record.
func (policy Policy) CanEdit(editor actor.Actor, record project.Record, field project.Field) bool {
	if editor.IsAdmin() {
		return true
	}
	if field == project.FieldAssignedTo {
		return false
	}
	if record.AssignedTo == "" {
		return policy.AllowUnassigned
	}
	return record.AssignedTo == editor.Username
}

// CanCreate reports whether the actor may add records.
func (policy Policy) CanCreate(editor actor.Actor) bool {
	return editor.IsAdmin()
}

// CanDelete reports whether the actor may remove records.
func (policy Policy) CanDelete(editor actor.Actor) bool {
	return editor.IsAdmin()
}

// CanEdit applies the default policy.
func CanEdit(editor actor.Actor, record project.Record, field project.Field) bool {
	return Policy{}.CanEdit(editor, record, field)
}
