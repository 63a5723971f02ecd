// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/planboard/lib/celledit"
	"github.com/bureau-foundation/planboard/lib/schema/project"
)

// fieldIndex returns the form position of field.
func fieldIndex(t *testing.T, form *addForm, field project.Field) int {
	t.Helper()
	for index := range form.fields {
		if form.fields[index].field == field {
			return index
		}
	}
	t.Fatalf("form has no %s field", field)
	return -1
}

// focusFormField tabs forward until field has focus.
func (f *fixture) focusFormField(t *testing.T, field project.Field) {
	t.Helper()
	target := fieldIndex(t, f.model.form, field)
	for f.model.form.focus != target {
		f.key(tea.KeyTab)
	}
}

func TestAddFormMissingAssignee(t *testing.T) {
	f := newFixture(t, admin, record("1", "a", "dana"))
	f.runes("n")
	if !f.model.formOpen {
		t.Fatal("admin could not open the add form")
	}

	f.runes("77")
	f.focusFormField(t, project.FieldName)
	f.runes("מגדל")
	f.key(tea.KeyCtrlS)

	notice := f.notice(t)
	if notice.Kind != celledit.NoticeError || !strings.HasPrefix(notice.Message, "נא למלא את השדות הנדרשים") {
		t.Fatalf("notice = %+v", notice)
	}
	if !strings.Contains(notice.Message, project.FieldAssignedTo.Title()) {
		t.Errorf("notice %q does not name the assignee", notice.Message)
	}
	if f.store.Len() != 1 {
		t.Fatalf("len = %d, want 1", f.store.Len())
	}
	if !f.model.formOpen {
		t.Error("form closed on a validation failure")
	}
}

func TestAddFormCreatesRecord(t *testing.T) {
	f := newFixture(t, admin, record("1", "a", "dana"))
	f.runes("n")
	f.runes(" 77 ")
	f.focusFormField(t, project.FieldName)
	f.runes("מגדל")
	f.focusFormField(t, project.FieldAssignedTo)
	f.key(tea.KeyDown)
	f.key(tea.KeyEnter)
	f.key(tea.KeyCtrlS)

	if f.store.Len() != 2 {
		t.Fatalf("len = %d, want 2", f.store.Len())
	}
	got, _ := f.store.At(1)
	want := project.Record{
		Number:     "77",
		Name:       "מגדל",
		Priority:   project.PriorityDomain.Values[0],
		AssignedTo: "dana",
	}
	if got != want {
		t.Fatalf("record = %+v, want %+v", got, want)
	}
	if f.model.formOpen {
		t.Error("form still open after saving")
	}
	if notice := f.notice(t); notice.Kind != celledit.NoticeSuccess || notice.Message != AddedMessage {
		t.Errorf("notice = %+v", notice)
	}
	if len(f.model.visible) != 2 {
		t.Errorf("visible rows = %d, want 2", len(f.model.visible))
	}
}

func TestAddFormAssigneeOptionsFollowDirectory(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	assignee := f.model.form.fields[fieldIndex(t, f.model.form, project.FieldAssignedTo)].enhanced
	if got := assignee.Control().Len(); got != 3 {
		t.Fatalf("assignee options = %d, want placeholder plus two users", got)
	}
	f.key(tea.KeyEsc)

	f.actors.Usernames = append(f.actors.Usernames, "noa")
	f.runes("n")
	if got := assignee.Control().Len(); got != 4 {
		t.Fatalf("assignee options = %d after the directory grew, want 4", got)
	}
	if assignee.TriggerLabel() == "" {
		t.Error("trigger not refreshed after the options changed")
	}
}

func TestAddFormPopupsCloseEachOther(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	form := f.model.form
	layout := form.layout(f.model.theme, f.model.width, f.model.height)

	priority := fieldIndex(t, form, project.FieldPriority)
	status := fieldIndex(t, form, project.FieldStatus)
	if priority >= status {
		t.Fatalf("priority (%d) should sit above status (%d)", priority, status)
	}

	// The status popup opens downwards, so the priority trigger above
	// it stays clickable.
	x, y := layout.fieldOrigin(status)
	f.click(x+1, y)
	if !form.fields[status].enhanced.IsOpen() {
		t.Fatal("clicking the status trigger did not open its popup")
	}

	x, y = layout.fieldOrigin(priority)
	f.click(x+1, y)
	if form.fields[status].enhanced.IsOpen() {
		t.Error("status popup still open after opening priority")
	}
	if !form.fields[priority].enhanced.IsOpen() {
		t.Error("priority popup not open")
	}
	if form.focus != priority {
		t.Errorf("focus = %d, want %d", form.focus, priority)
	}
	if open := form.page.OpenPopup(); open != form.fields[priority].enhanced {
		t.Error("page reports a different open popup")
	}
}

func TestAddFormOpenPopupCoversTriggersBelow(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	form := f.model.form
	layout := form.layout(f.model.theme, f.model.width, f.model.height)

	priority := fieldIndex(t, form, project.FieldPriority)
	status := fieldIndex(t, form, project.FieldStatus)
	x, y := layout.fieldOrigin(priority)
	f.click(x+1, y)

	// The status trigger row is drawn under the priority popup, so a
	// click there picks the priority option shown on that row.
	popupX, popupY := layout.popupOrigin(priority)
	_, statusY := layout.fieldOrigin(status)
	row := statusY - popupY
	if row < 0 || row >= len(project.PriorityDomain.Values) {
		t.Skipf("status row %d is not under the priority popup", row)
	}
	f.click(popupX+1, statusY)

	if got := form.fields[priority].value(); got != project.PriorityDomain.Values[row] {
		t.Errorf("priority = %q, want %q", got, project.PriorityDomain.Values[row])
	}
	if form.fields[status].enhanced.IsOpen() {
		t.Error("status popup opened through the priority popup")
	}
	if form.fields[priority].enhanced.IsOpen() {
		t.Error("priority popup still open after selecting")
	}
}

func TestAddFormKeyboardOpensAnotherPopup(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	form := f.model.form
	priority := fieldIndex(t, form, project.FieldPriority)
	status := fieldIndex(t, form, project.FieldStatus)

	f.focusFormField(t, project.FieldPriority)
	f.key(tea.KeyEnter)
	if !form.fields[priority].enhanced.IsOpen() {
		t.Fatal("Enter did not open the priority popup")
	}
	f.focusFormField(t, project.FieldStatus)
	f.key(tea.KeyEnter)
	if form.fields[priority].enhanced.IsOpen() {
		t.Error("priority popup still open")
	}
	if !form.fields[status].enhanced.IsOpen() {
		t.Error("status popup not open")
	}
}

func TestAddFormClickPopupSelects(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	form := f.model.form
	layout := form.layout(f.model.theme, f.model.width, f.model.height)
	hot := fieldIndex(t, form, project.FieldHot)

	x, y := layout.fieldOrigin(hot)
	f.click(x+1, y)
	popupX, popupY := layout.popupOrigin(hot)
	f.click(popupX+1, popupY+1)

	if got := form.fields[hot].value(); got != project.YesNoDomain.Values[0] {
		t.Fatalf("hot = %q, want %q", got, project.YesNoDomain.Values[0])
	}
	if form.fields[hot].enhanced.IsOpen() {
		t.Error("popup still open after selecting")
	}
}

func TestAddFormEscapeClosesPopupThenForm(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	f.focusFormField(t, project.FieldStatus)
	f.key(tea.KeyEnter)
	f.key(tea.KeyEsc)
	if !f.model.formOpen {
		t.Fatal("Escape with a popup open closed the whole form")
	}
	f.key(tea.KeyEsc)
	if f.model.formOpen {
		t.Fatal("Escape did not close the form")
	}
}

func TestAddFormClickOutsideDismisses(t *testing.T) {
	f := newFixture(t, admin)
	f.runes("n")
	f.click(0, 0)
	if f.model.formOpen {
		t.Fatal("click outside the form did not dismiss it")
	}
}
