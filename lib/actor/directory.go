// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCredentials is returned by Authenticate when the email is
// unknown or the password does not match. The two cases are not
// distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrMissingCredentials is returned by Authenticate when the email or
// password is empty.
var ErrMissingCredentials = errors.New("email and password are required")

// User is one entry in the users file.
type User struct {
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	Role         Role   `yaml:"role"`
}

// usersFile is the on-disk layout of the users file.
type usersFile struct {
	Users []User `yaml:"users"`
}

// Directory is the set of users known to the board. It is immutable
// after construction.
type Directory struct {
	users []User
}

// NewDirectory validates the users and builds a directory. Usernames
// and emails (case-insensitively) must be unique, roles must be
// known, and every user needs a bcrypt password hash.
func NewDirectory(users []User) (*Directory, error) {
	usernames := make(map[string]bool, len(users))
	emails := make(map[string]bool, len(users))
	for index, user := range users {
		if user.Username == "" {
			return nil, fmt.Errorf("user %d: username is required", index)
		}
		if usernames[user.Username] {
			return nil, fmt.Errorf("user %d: duplicate username %q", index, user.Username)
		}
		usernames[user.Username] = true

		email := strings.ToLower(user.Email)
		if email == "" {
			return nil, fmt.Errorf("user %q: email is required", user.Username)
		}
		if emails[email] {
			return nil, fmt.Errorf("user %q: duplicate email %q", user.Username, user.Email)
		}
		emails[email] = true

		if !user.Role.Valid() {
			return nil, fmt.Errorf("user %q: unknown role %q", user.Username, user.Role)
		}
		if _, err := bcrypt.Cost([]byte(user.PasswordHash)); err != nil {
			return nil, fmt.Errorf("user %q: password_hash is not a bcrypt hash: %w", user.Username, err)
		}
	}
	return &Directory{users: append([]User(nil), users...)}, nil
}

// LoadDirectory reads a YAML users file:
//
//	users:
//	  - username: dana
//	    email: dana@example.com
//	    password_hash: $2a$10$...
//	    role: standard
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}
	var file usersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing users file %s: %w", path, err)
	}
	directory, err := NewDirectory(file.Users)
	if err != nil {
		return nil, fmt.Errorf("users file %s: %w", path, err)
	}
	return directory, nil
}

// HashPassword produces a bcrypt hash suitable for the users file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate checks an email/password pair. Email matching is
// case-insensitive.
func (directory *Directory) Authenticate(email, password string) (Actor, error) {
	if email == "" || password == "" {
		return Actor{}, ErrMissingCredentials
	}
	for _, user := range directory.users {
		if !strings.EqualFold(user.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return Actor{}, ErrInvalidCredentials
		}
		return Actor{Username: user.Username, Role: user.Role}, nil
	}
	return Actor{}, ErrInvalidCredentials
}

// AssignableUsernames returns the usernames of every non-admin user
// in directory order.
func (directory *Directory) AssignableUsernames() []string {
	var usernames []string
	for _, user := range directory.users {
		if user.Role != RoleAdmin {
			usernames = append(usernames, user.Username)
		}
	}
	return usernames
}

// Len returns the number of users.
func (directory *Directory) Len() int {
	return len(directory.users)
}
