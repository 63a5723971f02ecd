// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"errors"
	"fmt"
)

// Field names a record field. The string value is the wire name used
// in the persisted blob.
type Field string

const (
	FieldNumber     Field = "project_number"
	FieldName       Field = "project"
	FieldPriority   Field = "priority"
	FieldAssignedTo Field = "assigned_to"
	FieldStatus     Field = "status"
	FieldNotes      Field = "notes"
	FieldIDF        Field = "idf"
	FieldBezeq      Field = "bezeq"
	FieldHot        Field = "hot"
)

// Fields lists every record field in grid column order.
var Fields = []Field{
	FieldNumber,
	FieldName,
	FieldPriority,
	FieldAssignedTo,
	FieldStatus,
	FieldNotes,
	FieldIDF,
	FieldBezeq,
	FieldHot,
}

// ErrUnknownField is returned when a field name is not part of the
// record's fixed field set.
var ErrUnknownField = errors.New("unknown record field")

// Kind classifies a field by the edit control it needs.
type Kind int

const (
	// KindText is free text edited in a single-line text box.
	KindText Kind = iota
	// KindEnum is a value drawn from a closed [Domain].
	KindEnum
	// KindIdentity is an actor username (the assignee).
	KindIdentity
)

func (kind Kind) String() string {
	switch kind {
	case KindText:
		return "text"
	case KindEnum:
		return "enum"
	case KindIdentity:
		return "identity"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}

// Kind returns the field's kind. Unknown fields report KindText.
func (field Field) Kind() Kind {
	switch field {
	case FieldPriority, FieldStatus, FieldIDF, FieldBezeq, FieldHot:
		return KindEnum
	case FieldAssignedTo:
		return KindIdentity
	default:
		return KindText
	}
}

// Valid reports whether the field is part of the record's field set.
func (field Field) Valid() bool {
	for _, known := range Fields {
		if field == known {
			return true
		}
	}
	return false
}

// Domain returns the enumerated domain for enum fields, or nil for
// text and identity fields.
func (field Field) Domain() *Domain {
	switch field {
	case FieldPriority:
		return &PriorityDomain
	case FieldStatus:
		return &StatusDomain
	case FieldIDF, FieldBezeq, FieldHot:
		return &YesNoDomain
	default:
		return nil
	}
}

// Title returns the column heading for the field.
func (field Field) Title() string {
	switch field {
	case FieldNumber:
		return "מספר פרויקט"
	case FieldName:
		return "שם הפרויקט"
	case FieldPriority:
		return "עדיפות"
	case FieldAssignedTo:
		return "מוקצה ל"
	case FieldStatus:
		return "סטטוס"
	case FieldNotes:
		return "הערות"
	case FieldIDF:
		return `חח"י`
	case FieldBezeq:
		return "בזק"
	case FieldHot:
		return "הוט"
	default:
		return string(field)
	}
}

// Record is one project row. Every field is a string; enumerated
// fields hold a member of their domain or the empty string.
type Record struct {
	Number     string `json:"project_number"`
	Name       string `json:"project"`
	Priority   string `json:"priority"`
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	IDF        string `json:"idf"`
	Bezeq      string `json:"bezeq"`
	Hot        string `json:"hot"`
}

// Get returns the value of the named field.
func (record *Record) Get(field Field) (string, error) {
	pointer := record.fieldPointer(field)
	if pointer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return *pointer, nil
}

// Value is Get for callers that have already validated the field.
// Unknown fields read as empty.
func (record *Record) Value(field Field) string {
	value, _ := record.Get(field)
	return value
}

// Set assigns the named field. The value is stored as given; domain
// membership is the caller's concern (edit controls only offer domain
// members).
func (record *Record) Set(field Field, value string) error {
	pointer := record.fieldPointer(field)
	if pointer == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*pointer = value
	return nil
}

func (record *Record) fieldPointer(field Field) *string {
	switch field {
	case FieldNumber:
		return &record.Number
	case FieldName:
		return &record.Name
	case FieldPriority:
		return &record.Priority
	case FieldAssignedTo:
		return &record.AssignedTo
	case FieldStatus:
		return &record.Status
	case FieldNotes:
		return &record.Notes
	case FieldIDF:
		return &record.IDF
	case FieldBezeq:
		return &record.Bezeq
	case FieldHot:
		return &record.Hot
	default:
		return nil
	}
}
