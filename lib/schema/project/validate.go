// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"strings"
)

// RequiredFields are the fields a new record must carry: identifier,
// name, and assignee.
var RequiredFields = []Field{FieldNumber, FieldName, FieldAssignedTo}

// MissingFieldsError reports the required fields a new record lacks.
type MissingFieldsError struct {
	Fields []Field
}

func (e *MissingFieldsError) Error() string {
	names := make([]string, len(e.Fields))
	for index, field := range e.Fields {
		names[index] = string(field)
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(names, ", "))
}

// Notice returns the user-facing validation message listing the
// missing fields by their column titles.
func (e *MissingFieldsError) Notice() string {
	titles := make([]string, len(e.Fields))
	for index, field := range e.Fields {
		titles[index] = field.Title()
	}
	return "נא למלא את השדות הנדרשים: " + strings.Join(titles, ", ")
}

// ValidateNew checks a record about to be created. Required fields
// must be non-blank after trimming; enumerated fields must hold a
// domain member or be empty. Returns a *MissingFieldsError when
// required fields are absent.
func ValidateNew(record Record) error {
	var missing []Field
	for _, field := range RequiredFields {
		if strings.TrimSpace(record.Value(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	for _, field := range Fields {
		domain := field.Domain()
		if domain == nil {
			continue
		}
		if value := record.Value(field); !domain.Contains(value) {
			return fmt.Errorf("%s: %q is not a %s value", field, value, domain.Name)
		}
	}
	return nil
}
