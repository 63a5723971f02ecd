// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package project

import "slices"

// Status values.
const (
	StatusWaiting               = "ממתין"
	StatusInProgress            = "בעבודה"
	StatusPlansSentForReview    = "נשלחו תוכניות לעיון"
	StatusUpdatedPlansSent      = "נשלחו תוכניות מעודכנות"
	StatusPlansSentForTender    = "נשלחו תוכניות למכרז"
	StatusPlansSentForExecution = "נשלחו תוכניות לביצוע"
	StatusSpecial               = "מיוחד"
)

// Priority values.
const (
	PriorityOnHold = "בהמתנה"
	PriorityUrgent = "דחוף"
	PriorityNew    = "חדש"
)

// Yes/no flag values.
const (
	Yes = "כן"
	No  = "לא"
)

// Domain is a closed set of permissible values for an enumerated
// field. The empty string (unset) is always accepted by Contains; it
// is offered as an edit choice only when AllowEmpty is set.
type Domain struct {
	Name       string
	Values     []string
	AllowEmpty bool
}

// StatusDomain is the project status domain. The empty status is
// offered first when editing.
var StatusDomain = Domain{
	Name: "status",
	Values: []string{
		StatusWaiting,
		StatusInProgress,
		StatusPlansSentForReview,
		StatusUpdatedPlansSent,
		StatusPlansSentForTender,
		StatusPlansSentForExecution,
		StatusSpecial,
	},
	AllowEmpty: true,
}

// PriorityDomain is the project priority domain.
var PriorityDomain = Domain{
	Name:   "priority",
	Values: []string{PriorityOnHold, PriorityUrgent, PriorityNew},
}

// YesNoDomain is shared by the three utility coordination flags.
var YesNoDomain = Domain{
	Name:       "yes_no",
	Values:     []string{Yes, No},
	AllowEmpty: true,
}

// Contains reports whether value is a member of the domain or empty.
func (domain *Domain) Contains(value string) bool {
	return value == "" || slices.Contains(domain.Values, value)
}

// Index returns the position of value in Values, or -1.
func (domain *Domain) Index(value string) int {
	return slices.Index(domain.Values, value)
}

// EditChoices returns the values offered by an edit control, in
// order. Domains that allow empty get "" prepended.
func (domain *Domain) EditChoices() []string {
	choices := make([]string, 0, len(domain.Values)+1)
	if domain.AllowEmpty {
		choices = append(choices, "")
	}
	return append(choices, domain.Values...)
}
