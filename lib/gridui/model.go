// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/planboard/lib/actor"
	"github.com/bureau-foundation/planboard/lib/celledit"
	"github.com/bureau-foundation/planboard/lib/choice"
	"github.com/bureau-foundation/planboard/lib/permission"
	"github.com/bureau-foundation/planboard/lib/recordstore"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// DefaultPageSize is the number of rows shown at once.
const DefaultPageSize = 25

// Rows above the grid body: header, column titles, separator.
const gridTop = 3

// Lines of chrome below the grid body: separator, status line.
const gridBottom = 2

// flashTickMsg advances the commit flash animation.
type flashTickMsg struct{}

// Config holds the collaborators of a Model. Store and Actors are
// required and the store must already be loaded.
type Config struct {
	Store  *recordstore.Store
	Actors actor.Provider
	Policy permission.Policy

	// Theme defaults to tui.DefaultTheme.
	Theme *tui.Theme

	// Keys defaults to DefaultKeyMap.
	Keys *KeyMap

	// PageSize caps the visible rows. Zero means DefaultPageSize.
	PageSize int

	// FlashDuration is how long a committed cell flashes. Zero means
	// tui.DefaultFlashDuration.
	FlashDuration time.Duration

	// Context is used for store writes. Nil means
	// context.Background().
	Context context.Context

	Logger *slog.Logger
}

// Model is the bubbletea model of the grid. It holds pointers to
// shared state (store, controller, caches), so copies made by the
// bubbletea runtime all see the same board.
//
// Model is not safe for concurrent use; bubbletea calls Update and
// View from one goroutine.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	store      *recordstore.Store
	actors     actor.Provider
	policy     permission.Policy
	controller *celledit.Controller
	page       *choice.Page
	board      *noticeBoard
	cache      *rowCache

	unsubscribe func()

	theme tui.Theme
	keys  KeyMap

	width, height int
	pageSize      int

	// visible holds the store indices of the rows passing the filter,
	// in store order. cursorRow indexes visible.
	visible      []int
	cursorRow    int
	cursorColumn int
	scrollOffset int

	filter FilterModel

	flash       *tui.FlashTracker
	tickRunning bool
	clock       func() time.Time

	form     *addForm
	formOpen bool
	confirm  *deleteConfirm

	logSummary  string
	logLevel    slog.Level
	logSequence uint64
}

// NewModel builds the grid over a loaded store.
func NewModel(cfg Config) (Model, error) {
	if cfg.Store == nil {
		return Model{}, errors.New("gridui: Store is required")
	}
	if cfg.Actors == nil {
		return Model{}, errors.New("gridui: Actors is required")
	}
	theme := tui.DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	keys := DefaultKeyMap
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	flashDuration := cfg.FlashDuration
	if flashDuration <= 0 {
		flashDuration = tui.DefaultFlashDuration
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	board := &noticeBoard{}
	page := choice.NewPage(theme)
	controller, err := celledit.New(celledit.Config{
		Store:    cfg.Store,
		Actors:   cfg.Actors,
		Policy:   cfg.Policy,
		Page:     page,
		Notifier: board,
		Logger:   logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("gridui: %w", err)
	}

	model := Model{
		ctx:        ctx,
		logger:     logger,
		store:      cfg.Store,
		actors:     cfg.Actors,
		policy:     cfg.Policy,
		controller: controller,
		page:       page,
		board:      board,
		cache:      newRowCache(),
		theme:      theme,
		keys:       keys,
		pageSize:   pageSize,
		flash:      tui.NewFlashTracker(flashDuration),
		clock:      time.Now,
		form:       newAddForm(theme),
	}
	model.unsubscribe = cfg.Store.Subscribe(model.cache.invalidate)
	model.refreshVisible()
	return model, nil
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. After every message the visible rows
// are recomputed if the store changed, and a fade is scheduled for any
// notice raised while handling it.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	updated, command := model.update(message)
	if updated.cache.dirty {
		updated.refreshVisible()
	}
	return updated, tea.Batch(command, updated.board.fadeCommand(NoticeFadeDelay))
}

func (model Model) update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ensureCursorVisible()
		return model, nil

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch {
		case model.confirm != nil:
			return model.handleConfirmKeys(message)
		case model.formOpen:
			return model.handleFormKeys(message)
		case model.filter.Active:
			return model.handleFilterKeys(message)
		}
		if session := model.activeSession(); session != nil {
			return model.handleEditKeys(session, message)
		}
		return model.handleGridKeys(message)

	case tea.MouseMsg:
		return model.handleMouse(message)

	case flashTickMsg:
		return model.handleFlashTick()

	case noticeFadeMsg:
		model.board.fade(message.Sequence)
		return model, nil

	case logRecordMsg:
		model.logSequence++
		model.logSummary = message.Summary
		model.logLevel = message.Level
		sequence := model.logSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.Sequence == model.logSequence {
			model.logSummary = ""
		}
		return model, nil
	}
	return model, nil
}

// Close detaches the model from the store.
func (model Model) Close() {
	model.unsubscribe()
	model.controller.Close()
}

// activeSession returns the open edit session, if any. The grid
// commits the previous session before opening another, so there is at
// most one.
func (model Model) activeSession() *celledit.Session {
	sessions := model.controller.Sessions()
	if len(sessions) == 0 {
		return nil
	}
	return sessions[0]
}

// currentActor returns the signed-in actor, or false.
func (model Model) currentActor() (actor.Actor, bool) {
	return model.actors.CurrentActor()
}

// cursorCell returns the cell under the cursor, or false when no rows
// are visible.
func (model Model) cursorCell() (celledit.Cell, bool) {
	if model.cursorRow < 0 || model.cursorRow >= len(model.visible) {
		return celledit.Cell{}, false
	}
	return celledit.Cell{Row: model.visible[model.cursorRow], Field: columns[model.cursorColumn].field}, true
}

func (model Model) handleGridKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.Left):
		model.cursorColumn = max(model.cursorColumn-1, 0)
	case key.Matches(message, model.keys.Right):
		model.cursorColumn = min(model.cursorColumn+1, len(columns)-1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.visible))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.visible))

	case key.Matches(message, model.keys.Edit):
		if cell, ok := model.cursorCell(); ok {
			return model, model.activate(cell)
		}

	case key.Matches(message, model.keys.Filter):
		model.filter.Active = true

	case message.Type == tea.KeyEsc && model.filter.Input != "":
		model.filter.Clear()
		model.refreshVisible()

	case key.Matches(message, model.keys.Add):
		return model.openForm()

	case key.Matches(message, model.keys.Delete):
		model.openDeleteConfirm()
	}
	return model, nil
}

func (model *Model) moveCursor(delta int) {
	if len(model.visible) == 0 {
		model.cursorRow = 0
		return
	}
	model.cursorRow = min(max(model.cursorRow+delta, 0), len(model.visible)-1)
	model.ensureCursorVisible()
}

// activate opens an editor on cell, committing any other open session
// first. Choice editors open with their popup showing.
func (model *Model) activate(cell celledit.Cell) tea.Cmd {
	var commands []tea.Cmd
	for _, session := range model.controller.Sessions() {
		if session.Cell != cell {
			commands = append(commands, model.commit(session.Cell))
		}
	}
	outcome, err := model.controller.Activate(cell)
	if err != nil && !errors.Is(err, celledit.ErrPermissionDenied) {
		model.logger.Warn("edit refused", "row", cell.Row, "field", cell.Field, "error", err)
	}
	if outcome == celledit.Opened {
		if session, ok := model.controller.Session(cell); ok && session.Choice() != nil {
			session.Choice().Enhanced().Open()
		}
	}
	return tea.Batch(commands...)
}

// commit writes the session on cell to the store and flashes the cell.
// The returned command starts the flash animation.
func (model *Model) commit(cell celledit.Cell) tea.Cmd {
	result, err := model.controller.Blur(model.ctx, cell)
	if err != nil {
		model.logger.Error("saving cell failed", "row", cell.Row, "field", cell.Field, "error", err)
		return nil
	}
	model.flash.Ignite(result.Cell.Key(), model.clock())
	return model.scheduleFlashTick()
}

// confirmEdit is Enter in a text editor: a forced commit.
func (model *Model) confirmEdit(cell celledit.Cell) tea.Cmd {
	result, err := model.controller.Confirm(model.ctx, cell)
	if err != nil {
		model.logger.Error("saving cell failed", "row", cell.Row, "field", cell.Field, "error", err)
		return nil
	}
	model.flash.Ignite(result.Cell.Key(), model.clock())
	return model.scheduleFlashTick()
}

func (model Model) handleEditKeys(session *celledit.Session, message tea.KeyMsg) (Model, tea.Cmd) {
	cell := session.Cell
	if message.Type == tea.KeyTab {
		return model, model.commit(cell)
	}

	if editor := session.Choice(); editor != nil {
		enhanced := editor.Enhanced()
		switch message.Type {
		case tea.KeyEnter:
			enhanced.HandleKey(choice.KeyEnter)
		case tea.KeySpace:
			enhanced.HandleKey(choice.KeySpace)
		case tea.KeyUp:
			enhanced.HandleKey(choice.KeyUp)
		case tea.KeyDown:
			enhanced.HandleKey(choice.KeyDown)
		case tea.KeyEsc:
			// The control's cancel listener ends the session.
			enhanced.HandleKey(choice.KeyEscape)
		}
		return model, nil
	}

	editor := session.Text()
	switch message.Type {
	case tea.KeyEnter:
		return model, model.confirmEdit(cell)
	case tea.KeyEsc:
		if err := model.controller.Cancel(cell); err != nil {
			model.logger.Warn("cancel failed", "error", err)
		}
	case tea.KeyBackspace:
		editor.Backspace()
	case tea.KeyDelete:
		editor.Delete()
	case tea.KeyLeft:
		editor.Left()
	case tea.KeyRight:
		editor.Right()
	case tea.KeyHome, tea.KeyCtrlA:
		editor.Home()
	case tea.KeyEnd, tea.KeyCtrlE:
		editor.End()
	case tea.KeySpace:
		editor.Insert(" ")
	case tea.KeyRunes:
		editor.Insert(string(message.Runes))
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.filter.Clear()
	case tea.KeyEnter:
		model.filter.Active = false
		return model, nil
	case tea.KeyBackspace:
		if !model.filter.HandleBackspace() {
			model.filter.Active = false
			return model, nil
		}
	case tea.KeySpace:
		model.filter.HandleRune(' ')
	case tea.KeyRunes:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
	default:
		return model, nil
	}
	model.cursorRow = 0
	model.scrollOffset = 0
	model.refreshVisible()
	return model, nil
}

// openForm shows the add-record form to actors allowed to create.
func (model Model) openForm() (Model, tea.Cmd) {
	current, ok := model.currentActor()
	if !ok || !model.policy.CanCreate(current) {
		return model, nil
	}
	model.formOpen = true
	return model, model.form.reset(model.actors.AssignableUsernames())
}

func (model Model) handleFormKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	action, command := model.form.handleKey(message)
	return model.applyFormAction(action, command)
}

func (model Model) applyFormAction(action formAction, command tea.Cmd) (Model, tea.Cmd) {
	switch action {
	case formDismiss:
		model.formOpen = false
	case formSubmit:
		model.submitForm()
	}
	return model, command
}

// submitForm validates the form and appends the record. Missing
// required fields raise a notice and keep the form open.
func (model *Model) submitForm() {
	current, ok := model.currentActor()
	if !ok || !model.policy.CanCreate(current) {
		model.formOpen = false
		return
	}
	record := model.form.record()
	if err := project.ValidateNew(record); err != nil {
		var missing *project.MissingFieldsError
		if errors.As(err, &missing) {
			model.board.Notify(celledit.Notice{Kind: celledit.NoticeError, Message: missing.Notice()})
			return
		}
		model.board.Notify(celledit.Notice{Kind: celledit.NoticeError, Message: err.Error()})
		return
	}
	if err := model.store.Append(model.ctx, record); err != nil {
		model.logger.Error("adding record failed", "error", err)
		return
	}
	model.formOpen = false
	model.form.page.PointerDown(nil)
	model.board.Notify(celledit.Notice{Kind: celledit.NoticeSuccess, Message: AddedMessage})
	model.logger.Info("record added", "number", record.Number, "by", current.Username)
}

// openDeleteConfirm asks to delete the cursor row, for actors allowed
// to delete.
func (model *Model) openDeleteConfirm() {
	current, ok := model.currentActor()
	if !ok || !model.policy.CanDelete(current) {
		return
	}
	cell, ok := model.cursorCell()
	if !ok {
		return
	}
	record, err := model.store.At(cell.Row)
	if err != nil {
		return
	}
	model.confirm = &deleteConfirm{index: cell.Row, name: record.Name}
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEnter,
		message.Type == tea.KeyRunes && string(message.Runes) == "y":
		model.deleteConfirmed()
	case message.Type == tea.KeyEsc,
		message.Type == tea.KeyRunes && string(message.Runes) == "n":
		model.confirm = nil
	}
	return model, nil
}

// deleteConfirmed closes the row's edit sessions and removes it.
func (model *Model) deleteConfirmed() {
	index := model.confirm.index
	model.confirm = nil
	current, ok := model.currentActor()
	if !ok || !model.policy.CanDelete(current) {
		return
	}
	model.controller.CloseRow(index)
	if err := model.store.RemoveAt(model.ctx, index); err != nil {
		model.logger.Error("deleting record failed", "index", index, "error", err)
		return
	}
	model.flash.Clear()
	model.board.Notify(celledit.Notice{Kind: celledit.NoticeSuccess, Message: DeletedMessage})
	model.logger.Info("record deleted", "index", index, "by", current.Username)
}

// refreshVisible recomputes the filtered rows and clamps the cursor.
func (model *Model) refreshVisible() {
	model.cache.dirty = false
	model.visible = model.filter.Apply(model.store.All())
	if model.cursorRow >= len(model.visible) {
		model.cursorRow = max(len(model.visible)-1, 0)
	}
	model.ensureCursorVisible()
}

// visibleHeight is the number of grid rows on screen.
func (model Model) visibleHeight() int {
	available := model.height - gridTop - gridBottom
	if model.height == 0 {
		available = model.pageSize
	}
	return max(min(model.pageSize, available), 1)
}

// ensureCursorVisible scrolls so the cursor row is on screen.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	maxOffset := max(len(model.visible)-visible, 0)
	model.scrollOffset = min(model.scrollOffset, maxOffset)
	if model.cursorRow < model.scrollOffset {
		model.scrollOffset = model.cursorRow
	}
	if model.cursorRow >= model.scrollOffset+visible {
		model.scrollOffset = model.cursorRow - visible + 1
	}
}

// scheduleFlashTick starts the flash animation loop if it is not
// already running.
func (model *Model) scheduleFlashTick() tea.Cmd {
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return tea.Tick(tui.FlashTickInterval, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (model Model) handleFlashTick() (Model, tea.Cmd) {
	model.tickRunning = false
	if !model.flash.HasActive(model.clock()) {
		return model, nil
	}
	return model, model.scheduleFlashTick()
}
