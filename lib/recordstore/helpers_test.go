// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package recordstore

import (
	"os"
	"testing"
)

// corruptFile flips the final byte of path.
func corruptFile(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xff
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
}
