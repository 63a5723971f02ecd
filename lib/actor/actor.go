// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actor

import "fmt"

// Role is an actor's privilege level.
type Role string

const (
	// RoleAdmin may edit every field of every record, reassign
	// records, and create or delete records.
	RoleAdmin Role = "admin"
	// RoleStandard may edit non-assignee fields of records assigned
	// to them.
	RoleStandard Role = "standard"
)

// Valid reports whether the role is one of the known roles.
func (role Role) Valid() bool {
	return role == RoleAdmin || role == RoleStandard
}

// Label returns the role's display label for the header.
func (role Role) Label() string {
	if role == RoleAdmin {
		return "מנהל מערכת"
	}
	return "משתמש"
}

// Actor is the current authenticated identity.
type Actor struct {
	Username string
	Role     Role
}

// IsAdmin reports whether the actor holds the admin role.
func (actor Actor) IsAdmin() bool {
	return actor.Role == RoleAdmin
}

func (actor Actor) String() string {
	return fmt.Sprintf("%s (%s)", actor.Username, actor.Role)
}

// Provider exposes the current actor to the editing core. All methods
// are read-only; implementations may change their answers between
// calls (login, logout, role change), so callers must not cache.
type Provider interface {
	// CurrentActor returns the signed-in actor, or false when nobody
	// is signed in.
	CurrentActor() (Actor, bool)

	// IsPrivileged reports whether the current actor is an admin.
	// False when nobody is signed in.
	IsPrivileged() bool

	// AssignableUsernames lists every non-admin username, in
	// directory order. Used to populate the assignee edit control.
	AssignableUsernames() []string
}

// StaticProvider is a Provider whose answers are plain fields. Tests
// mutate the fields between calls to simulate role changes.
type StaticProvider struct {
	Actor     Actor
	SignedIn  bool
	Usernames []string
}

// NewStaticProvider returns a provider with the given actor signed in.
func NewStaticProvider(actor Actor, usernames ...string) *StaticProvider {
	return &StaticProvider{Actor: actor, SignedIn: true, Usernames: usernames}
}

// CurrentActor implements Provider.
func (provider *StaticProvider) CurrentActor() (Actor, bool) {
	if !provider.SignedIn {
		return Actor{}, false
	}
	return provider.Actor, true
}

// IsPrivileged implements Provider.
func (provider *StaticProvider) IsPrivileged() bool {
	return provider.SignedIn && provider.Actor.IsAdmin()
}

// AssignableUsernames implements Provider.
func (provider *StaticProvider) AssignableUsernames() []string {
	return append([]string(nil), provider.Usernames...)
}
