// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

//go:embed defaults.jsonc
var defaultSeed []byte

// DefaultRecords returns a fresh copy of the built-in seed dataset.
// The embedded document is validated by tests, so a parse failure
// here is a build defect and panics.
func DefaultRecords() []Record {
	records, err := ParseSeed(defaultSeed)
	if err != nil {
		panic("project: embedded seed dataset is invalid: " + err.Error())
	}
	return records
}

// ParseSeed decodes a JSONC seed document (JSON with comments and
// trailing commas) into records. Enumerated fields are checked against
// their domains so a typo in a seed file fails loudly rather than
// rendering as an unknown badge.
func ParseSeed(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for index, record := range records {
		for _, field := range Fields {
			domain := field.Domain()
			if domain == nil {
				continue
			}
			if value := record.Value(field); !domain.Contains(value) {
				return nil, fmt.Errorf("seed record %d: %s: %q is not a %s value", index, field, value, domain.Name)
			}
		}
	}
	return records, nil
}

// LoadSeedFile reads and parses a JSONC seed file.
func LoadSeedFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	records, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
