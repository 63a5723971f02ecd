// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword returns the sign-in password. A passwordFile other than
// "" or "-" is read from disk; otherwise the password is prompted for
// on the terminal with echo disabled.
func ReadPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		return ReadSecretFile(passwordFile)
	}

	descriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(descriptor) {
		return "", Validation("no terminal available for the password prompt").
			WithHint("pass --password-file")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(descriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", Internal("reading password: %w", err)
	}
	if len(password) == 0 {
		return "", Validation("empty password")
	}
	return string(password), nil
}

// ReadSecretFile reads a secret from path, dropping trailing newlines.
func ReadSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NotFound("password file %s does not exist", path)
		}
		return "", Internal("reading %s: %w", path, err)
	}
	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return "", Validation("file %s is empty (after stripping trailing newlines)", path)
	}
	return secret, nil
}

// PromptLine writes prompt to output and reads one trimmed line from
// input.
func PromptLine(input io.Reader, output io.Writer, prompt string) (string, error) {
	fmt.Fprint(output, prompt)
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", Internal("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", Validation("no input")
	}
	return line, nil
}
