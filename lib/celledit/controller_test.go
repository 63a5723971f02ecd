// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celledit

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/planboard/lib/actor"
	"github.com/bureau-foundation/planboard/lib/blobstore"
	"github.com/bureau-foundation/planboard/lib/choice"
	"github.com/bureau-foundation/planboard/lib/permission"
	"github.com/bureau-foundation/planboard/lib/recordstore"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

var (
	dana  = actor.Actor{Username: "dana", Role: actor.RoleStandard}
	admin = actor.Actor{Username: "admin", Role: actor.RoleAdmin}
)

type harness struct {
	blobs      *blobstore.MemoryStore
	store      *recordstore.Store
	actors     *actor.StaticProvider
	page       *choice.Page
	controller *Controller
	notices    []Notice
}

func newHarness(t *testing.T, current actor.Actor, records ...project.Record) *harness {
	t.Helper()
	h := &harness{
		blobs:  blobstore.NewMemoryStore(),
		actors: actor.NewStaticProvider(current, "dana", "yossi", "noa"),
		page:   choice.NewPage(tui.DefaultTheme),
	}
	store, err := recordstore.New(recordstore.Config{
		Blobs: h.blobs,
		Seed:  func() []project.Record { return slices.Clone(records) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.store = store
	controller, err := New(Config{
		Store:    store,
		Actors:   h.actors,
		Page:     h.page,
		Notifier: NotifierFunc(func(notice Notice) { h.notices = append(h.notices, notice) }),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(controller.Close)
	h.controller = controller
	return h
}

// persisted reads the durable blob back through a fresh store.
func (h *harness) persisted(t *testing.T) []project.Record {
	t.Helper()
	store, err := recordstore.New(recordstore.Config{Blobs: h.blobs})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return store.All()
}

func TestSelectStatusAndBlurCommits(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", Name: "a", AssignedTo: "dana", Status: ""})
	cell := Cell{Row: 0, Field: project.FieldStatus}

	outcome, err := h.controller.Activate(cell)
	if err != nil || outcome != Opened {
		t.Fatalf("Activate = %v, %v", outcome, err)
	}
	session, _ := h.controller.Session(cell)
	editor := session.Choice()
	if editor == nil {
		t.Fatal("status cell did not get a choice editor")
	}
	index := slices.IndexFunc(editor.Control().Options(), func(option choice.Option) bool {
		return option.Value == project.StatusInProgress
	})
	editor.Enhanced().Open()
	if !editor.Enhanced().SelectAt(index) {
		t.Fatal("SelectAt failed")
	}
	if h.controller.State(cell) != StateEditing {
		t.Fatal("selection alone ended the session")
	}

	commit, err := h.controller.Blur(context.Background(), cell)
	if err != nil {
		t.Fatalf("Blur: %v", err)
	}
	if commit.Value != project.StatusInProgress || commit.Cell != cell {
		t.Errorf("commit = %+v", commit)
	}
	record, _ := h.store.At(0)
	if record.Status != project.StatusInProgress {
		t.Errorf("status = %q, want %q", record.Status, project.StatusInProgress)
	}
	if h.controller.State(cell) != StateDisplay {
		t.Error("cell still editing after blur")
	}
	if h.page.Len() != 0 {
		t.Error("choice control not released after commit")
	}
}

func TestEditOfOthersRecordDenied(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", Name: "a", AssignedTo: "yossi"})
	for _, field := range project.Fields {
		cell := Cell{Row: 0, Field: field}
		outcome, err := h.controller.Activate(cell)
		if outcome != Denied || !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("%s: Activate = %v, %v; want Denied", field, outcome, err)
		}
		if h.controller.State(cell) != StateDisplay {
			t.Errorf("%s: an edit control appeared", field)
		}
	}
	if len(h.notices) != len(project.Fields) {
		t.Fatalf("%d notices, want %d", len(h.notices), len(project.Fields))
	}
	for _, notice := range h.notices {
		if notice.Kind != NoticeError || notice.Message != PermissionDeniedMessage {
			t.Errorf("notice = %+v", notice)
		}
	}
	if h.page.Len() != 0 {
		t.Error("a denied activation enhanced a control")
	}
}

func TestSignedOutActorDenied(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", AssignedTo: "dana"})
	h.actors.SignedIn = false
	if outcome, _ := h.controller.Activate(Cell{Row: 0, Field: project.FieldNotes}); outcome != Denied {
		t.Errorf("signed-out Activate = %v", outcome)
	}
}

func TestPermissionRequeriedOnEveryActivation(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", AssignedTo: "yossi"})
	cell := Cell{Row: 0, Field: project.FieldNotes}
	if outcome, _ := h.controller.Activate(cell); outcome != Denied {
		t.Fatalf("standard actor: %v", outcome)
	}
	h.actors.Actor = admin
	if outcome, _ := h.controller.Activate(cell); outcome != Opened {
		t.Errorf("after promotion: %v", outcome)
	}
}

func TestCancelLeavesOriginalValue(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", Name: "original", AssignedTo: "dana"})
	cell := Cell{Row: 0, Field: project.FieldName}
	if _, err := h.controller.Activate(cell); err != nil {
		t.Fatal(err)
	}
	session, _ := h.controller.Session(cell)
	session.Text().Insert("replacement")
	if err := h.controller.Cancel(cell); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	record, _ := h.store.At(0)
	if record.Name != "original" {
		t.Errorf("name = %q after cancel", record.Name)
	}
	if h.persisted(t)[0].Name != "original" {
		t.Error("cancel wrote to the durable store")
	}
	if err := h.controller.Cancel(cell); !errors.Is(err, ErrNoSession) {
		t.Errorf("second Cancel = %v, want ErrNoSession", err)
	}
}

func TestEscapeInPopupCancels(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", AssignedTo: "dana", Hot: project.No})
	cell := Cell{Row: 0, Field: project.FieldHot}
	if _, err := h.controller.Activate(cell); err != nil {
		t.Fatal(err)
	}
	session, _ := h.controller.Session(cell)
	enhanced := session.Choice().Enhanced()
	enhanced.HandleKey(choice.KeyUp)
	enhanced.HandleKey(choice.KeyEscape)

	if h.controller.State(cell) != StateDisplay {
		t.Error("escape did not end the session")
	}
	record, _ := h.store.At(0)
	if record.Hot != project.No {
		t.Errorf("hot = %q after escape, want %q", record.Hot, project.No)
	}
}

func TestConfirmCommitsAndPersists(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", Name: "old", AssignedTo: "dana"})
	cell := Cell{Row: 0, Field: project.FieldName}
	h.controller.Activate(cell)
	session, _ := h.controller.Session(cell)
	session.Text().Insert("new name")

	commit, err := h.controller.Confirm(context.Background(), cell)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if commit.Value != "new name" {
		t.Errorf("commit value = %q", commit.Value)
	}
	if got := h.persisted(t)[0].Name; got != "new name" {
		t.Errorf("persisted name = %q", got)
	}
}

func TestActivateIsReentrant(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1", Name: "n", AssignedTo: "dana"})
	cell := Cell{Row: 0, Field: project.FieldName}
	h.controller.Activate(cell)
	first, _ := h.controller.Session(cell)
	first.Text().Insert("typed")

	outcome, err := h.controller.Activate(cell)
	if err != nil || outcome != AlreadyEditing {
		t.Errorf("second Activate = %v, %v", outcome, err)
	}
	second, _ := h.controller.Session(cell)
	if second != first || second.Editor.Value() != "typed" {
		t.Error("re-activation replaced the session")
	}
}

func TestActivateUnknownRowAndField(t *testing.T) {
	h := newHarness(t, admin, project.Record{Number: "1"})
	if _, err := h.controller.Activate(Cell{Row: 3, Field: project.FieldName}); !errors.Is(err, recordstore.ErrInvalidIndex) {
		t.Errorf("row 3: %v", err)
	}
	if _, err := h.controller.Activate(Cell{Row: 0, Field: "owner"}); !errors.Is(err, project.ErrUnknownField) {
		t.Errorf("field owner: %v", err)
	}
	if len(h.notices) != 0 {
		t.Errorf("invalid activations raised notices: %v", h.notices)
	}
}

func TestAssigneeEditorListsAssignableUsers(t *testing.T) {
	h := newHarness(t, admin, project.Record{Number: "1", AssignedTo: "yossi"})
	cell := Cell{Row: 0, Field: project.FieldAssignedTo}
	if outcome, err := h.controller.Activate(cell); outcome != Opened {
		t.Fatalf("admin Activate(assignee) = %v, %v", outcome, err)
	}
	session, _ := h.controller.Session(cell)
	control := session.Choice().Control()
	var values []string
	for _, option := range control.Options() {
		values = append(values, option.Value)
	}
	if !slices.Equal(values, []string{"dana", "yossi", "noa"}) {
		t.Errorf("options = %v", values)
	}
	if control.Value() != "yossi" {
		t.Errorf("pre-selected %q, want yossi", control.Value())
	}
}

func TestRemoveShiftsSessions(t *testing.T) {
	h := newHarness(t, admin,
		project.Record{Number: "1"}, project.Record{Number: "2"}, project.Record{Number: "3"})
	h.controller.Activate(Cell{Row: 0, Field: project.FieldNotes})
	h.controller.Activate(Cell{Row: 1, Field: project.FieldNotes})
	h.controller.Activate(Cell{Row: 2, Field: project.FieldNotes})

	if err := h.store.RemoveAt(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	var rows []int
	for _, session := range h.controller.Sessions() {
		rows = append(rows, session.Cell.Row)
	}
	if !slices.Equal(rows, []int{0, 1}) {
		t.Fatalf("session rows = %v, want [0 1]", rows)
	}
	session, _ := h.controller.Session(Cell{Row: 1, Field: project.FieldNotes})
	session.Text().Insert("x")
	h.controller.Blur(context.Background(), session.Cell)
	record, _ := h.store.At(1)
	if record.Number != "3" || record.Notes != "x" {
		t.Errorf("commit landed on %+v, want record 3", record)
	}
}

func TestFailedCommitClosesSession(t *testing.T) {
	h := newHarness(t, admin, project.Record{Number: "1"})
	cell := Cell{Row: 0, Field: project.FieldNotes}
	h.controller.Activate(cell)
	// Detached from store events, the session outlives its row.
	h.controller.unsubscribe()
	h.controller.unsubscribe = nil
	h.store.RemoveAt(context.Background(), 0)

	if _, err := h.controller.Blur(context.Background(), cell); !errors.Is(err, recordstore.ErrInvalidIndex) {
		t.Errorf("Blur on a vanished row = %v, want ErrInvalidIndex", err)
	}
	if h.controller.State(cell) != StateDisplay {
		t.Error("failed commit left the session open")
	}
}

func TestPolicyAllowUnassigned(t *testing.T) {
	h := newHarness(t, dana, project.Record{Number: "1"})
	cell := Cell{Row: 0, Field: project.FieldNotes}
	if outcome, _ := h.controller.Activate(cell); outcome != Denied {
		t.Fatalf("default policy: %v", outcome)
	}
	h.controller.policy = permission.Policy{AllowUnassigned: true}
	if outcome, _ := h.controller.Activate(cell); outcome != Opened {
		t.Errorf("AllowUnassigned: %v", outcome)
	}
}
