// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actor

// Session holds the signed-in actor for one run of the board. It is
// the production Provider. Only the password-free identity is kept
// after login.
type Session struct {
	directory *Directory
	current   *Actor
}

// NewSession creates a session over the directory with nobody signed
// in.
func NewSession(directory *Directory) *Session {
	return &Session{directory: directory}
}

// Login authenticates against the directory and, on success, makes
// the user the current actor. A failed login leaves any previous
// actor signed in.
func (session *Session) Login(email, password string) (Actor, error) {
	actor, err := session.directory.Authenticate(email, password)
	if err != nil {
		return Actor{}, err
	}
	session.current = &actor
	return actor, nil
}

// Logout clears the current actor.
func (session *Session) Logout() {
	session.current = nil
}

// CurrentActor implements Provider.
func (session *Session) CurrentActor() (Actor, bool) {
	if session.current == nil {
		return Actor{}, false
	}
	return *session.current, true
}

// IsPrivileged implements Provider.
func (session *Session) IsPrivileged() bool {
	return session.current != nil && session.current.IsAdmin()
}

// AssignableUsernames implements Provider.
func (session *Session) AssignableUsernames() []string {
	return session.directory.AssignableUsernames()
}
