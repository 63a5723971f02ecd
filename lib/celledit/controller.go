// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celledit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/bureau-foundation/planboard/lib/actor"
	"github.com/bureau-foundation/planboard/lib/choice"
	"github.com/bureau-foundation/planboard/lib/permission"
	"github.com/bureau-foundation/planboard/lib/recordstore"
	"github.com/bureau-foundation/planboard/lib/schema/project"
)

// PermissionDeniedMessage is the notice shown when an edit is refused.
const PermissionDeniedMessage = "אין לך הרשאה לערוך שדה זה"

// ErrPermissionDenied is returned by Activate alongside Denied.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNoSession is returned when committing or cancelling a cell that
// is not being edited.
var ErrNoSession = errors.New("cell is not being edited")

// Cell identifies one cell of the grid.
type Cell struct {
	Row   int
	Field project.Field
}

// Key returns a stable string form, used to key flash animations.
func (cell Cell) Key() string {
	return strconv.Itoa(cell.Row) + "/" + string(cell.Field)
}

// State is a cell's edit state.
type State int

const (
	StateDisplay State = iota
	StateEditing
)

// Outcome is the result of Activate.
type Outcome int

const (
	// Opened means a new session is editing the cell.
	Opened Outcome = iota
	// Denied means the actor may not edit the cell; a notice was
	// raised.
	Denied
	// AlreadyEditing means the cell already had a session; nothing
	// changed.
	AlreadyEditing
)

func (outcome Outcome) String() string {
	switch outcome {
	case Opened:
		return "opened"
	case Denied:
		return "denied"
	case AlreadyEditing:
		return "already_editing"
	default:
		return "unknown"
	}
}

// Editor is the live input of a session.
type Editor interface {
	Value() string
}

// Session is one in-progress cell edit.
type Session struct {
	Cell     Cell
	Original string
	Editor   Editor
}

// Text returns the session's text editor, or nil for choice fields.
func (session *Session) Text() *TextEditor {
	editor, _ := session.Editor.(*TextEditor)
	return editor
}

// Choice returns the session's choice editor, or nil for text fields.
func (session *Session) Choice() *ChoiceEditor {
	editor, _ := session.Editor.(*ChoiceEditor)
	return editor
}

// Commit describes a successful write.
type Commit struct {
	Cell  Cell
	Value string
}

// Config holds the collaborators of a Controller. Store, Actors, and
// Page are required.
type Config struct {
	Store    *recordstore.Store
	Actors   actor.Provider
	Policy   permission.Policy
	Page     *choice.Page
	Notifier Notifier
	Logger   *slog.Logger
}

// Controller manages the edit state of every cell.
type Controller struct {
	store    *recordstore.Store
	actors   actor.Provider
	policy   permission.Policy
	page     *choice.Page
	notifier Notifier
	logger   *slog.Logger

	sessions    map[Cell]*Session
	unsubscribe func()
}

// New creates a controller and subscribes it to store events. Call
// Close to unsubscribe.
func New(cfg Config) (*Controller, error) {
	if cfg.Store == nil || cfg.Actors == nil || cfg.Page == nil {
		return nil, fmt.Errorf("celledit: Store, Actors, and Page are required")
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	controller := &Controller{
		store:    cfg.Store,
		actors:   cfg.Actors,
		policy:   cfg.Policy,
		page:     cfg.Page,
		notifier: notifier,
		logger:   logger,
		sessions: make(map[Cell]*Session),
	}
	controller.unsubscribe = cfg.Store.Subscribe(controller.handleStoreEvent)
	return controller, nil
}

// Close cancels every session and stops following the store.
func (controller *Controller) Close() {
	controller.CloseAll()
	if controller.unsubscribe != nil {
		controller.unsubscribe()
		controller.unsubscribe = nil
	}
}

// State returns the edit state of cell.
func (controller *Controller) State(cell Cell) State {
	if _, editing := controller.sessions[cell]; editing {
		return StateEditing
	}
	return StateDisplay
}

// Session returns the session editing cell.
func (controller *Controller) Session(cell Cell) (*Session, bool) {
	session, ok := controller.sessions[cell]
	return session, ok
}

// Sessions returns every open session ordered by row, then column.
func (controller *Controller) Sessions() []*Session {
	sessions := make([]*Session, 0, len(controller.sessions))
	for _, session := range controller.sessions {
		sessions = append(sessions, session)
	}
	slices.SortFunc(sessions, func(a, b *Session) int {
		if a.Cell.Row != b.Cell.Row {
			return a.Cell.Row - b.Cell.Row
		}
		return slices.Index(project.Fields, a.Cell.Field) - slices.Index(project.Fields, b.Cell.Field)
	})
	return sessions
}

// Activate starts editing cell. Returns recordstore.ErrInvalidIndex
// for rows that no longer exist and project.ErrUnknownField for
// fields outside the record.
func (controller *Controller) Activate(cell Cell) (Outcome, error) {
	if !cell.Field.Valid() {
		return Denied, fmt.Errorf("celledit: %q: %w", cell.Field, project.ErrUnknownField)
	}
	record, err := controller.store.At(cell.Row)
	if err != nil {
		controller.logger.Warn("activation of missing row ignored", "row", cell.Row, "field", cell.Field)
		return Denied, fmt.Errorf("celledit: %w", err)
	}
	if _, editing := controller.sessions[cell]; editing {
		return AlreadyEditing, nil
	}

	editor, signedIn := controller.actors.CurrentActor()
	if !signedIn || !controller.policy.CanEdit(editor, record, cell.Field) {
		controller.logger.Debug("edit denied", "row", cell.Row, "field", cell.Field, "actor", editor.Username)
		controller.notifier.Notify(Notice{Kind: NoticeError, Message: PermissionDeniedMessage})
		return Denied, ErrPermissionDenied
	}

	original := record.Value(cell.Field)
	session := &Session{Cell: cell, Original: original}
	switch cell.Field.Kind() {
	case project.KindText:
		session.Editor = NewTextEditor(original)
	case project.KindEnum:
		session.Editor = controller.newChoiceEditor(cell, ValueOptionsWith(cell.Field.Domain().EditChoices(), original), original)
	case project.KindIdentity:
		session.Editor = controller.newChoiceEditor(cell, ValueOptionsWith(controller.actors.AssignableUsernames(), original), original)
	}
	controller.sessions[cell] = session
	controller.logger.Debug("edit opened", "row", cell.Row, "field", cell.Field)
	return Opened, nil
}

func (controller *Controller) newChoiceEditor(cell Cell, options []choice.Option, original string) *ChoiceEditor {
	control := choice.NewControl(string(cell.Field), options)
	control.SetValue(original)
	editor := &ChoiceEditor{control: control, enhanced: controller.page.Enhance(control)}
	control.OnCancel(func() {
		// The row may have shifted since the session opened.
		for current, session := range controller.sessions {
			if session.Editor == Editor(editor) {
				controller.Cancel(current)
				return
			}
		}
	})
	return editor
}

// Blur commits the session on cell: the editor value is written to the
// store and the session closes. The session closes even when the write
// fails; the store has already rolled its memory back.
func (controller *Controller) Blur(ctx context.Context, cell Cell) (Commit, error) {
	session, ok := controller.sessions[cell]
	if !ok {
		return Commit{}, fmt.Errorf("celledit: %s: %w", cell.Key(), ErrNoSession)
	}
	controller.close(cell)

	value := session.Editor.Value()
	if err := controller.store.UpdateField(ctx, cell.Row, cell.Field, value); err != nil {
		return Commit{}, fmt.Errorf("celledit: committing %s: %w", cell.Key(), err)
	}
	controller.logger.Info("cell committed", "row", cell.Row, "field", cell.Field, "changed", value != session.Original)
	return Commit{Cell: cell, Value: value}, nil
}

// Confirm is Enter: a forced blur.
func (controller *Controller) Confirm(ctx context.Context, cell Cell) (Commit, error) {
	return controller.Blur(ctx, cell)
}

// Cancel drops the session on cell without writing.
func (controller *Controller) Cancel(cell Cell) error {
	if _, ok := controller.sessions[cell]; !ok {
		return fmt.Errorf("celledit: %s: %w", cell.Key(), ErrNoSession)
	}
	controller.close(cell)
	controller.logger.Debug("edit cancelled", "row", cell.Row, "field", cell.Field)
	return nil
}

// CloseRow cancels every session on row.
func (controller *Controller) CloseRow(row int) {
	for cell := range controller.sessions {
		if cell.Row == row {
			controller.close(cell)
		}
	}
}

// CloseAll cancels every session.
func (controller *Controller) CloseAll() {
	for cell := range controller.sessions {
		controller.close(cell)
	}
}

func (controller *Controller) close(cell Cell) {
	session, ok := controller.sessions[cell]
	if !ok {
		return
	}
	delete(controller.sessions, cell)
	if editor := session.Choice(); editor != nil {
		controller.page.Release(editor.control)
	}
}

func (controller *Controller) handleStoreEvent(event recordstore.Event) {
	switch event.Kind {
	case recordstore.EventRemove:
		controller.CloseRow(event.Index)
		shifted := make(map[Cell]*Session, len(controller.sessions))
		for cell, session := range controller.sessions {
			if cell.Row > event.Index {
				cell.Row--
				session.Cell = cell
			}
			shifted[cell] = session
		}
		controller.sessions = shifted
	case recordstore.EventReset:
		controller.CloseAll()
	}
}
