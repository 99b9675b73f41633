// Package app provides the main application controller
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"counter-terminal/pkg/event"
	"counter-terminal/pkg/history"
	"counter-terminal/pkg/keymap"
	"counter-terminal/pkg/model"
	"counter-terminal/pkg/tui"
	"counter-terminal/pkg/ui"
)

// Terminal is the part of the terminal controller the application drives.
// *tui.Tui implements it.
type Terminal interface {
	ID() string
	Enter() error
	Events() *event.Receiver
	Draw(render func(f *tui.Frame)) error
	Resize(width, height int)
	Suspend() error
	Resume() error
	RequestQuit() error
	Close() error
}

// Options contains the optional application components
type Options struct {
	Keymap   *keymap.Keymap
	Recorder *history.Recorder
	Logger   *slog.Logger

	// HistoryFile, when set, receives the recorded history on exit
	HistoryFile   string
	HistoryFormat history.FileFormat
}

// Application is the dispatch loop of the counter
type Application struct {
	term     Terminal
	keymap   *keymap.Keymap
	recorder *history.Recorder
	model    *model.Model
	logger   *slog.Logger
	options  Options

	session *Session

	mu        sync.RWMutex
	isRunning bool
}

// Session holds the statistics of one run
type Session struct {
	ID        string
	StartTime time.Time
	EndTime   *time.Time
	Events    int64
	Messages  int64
	IsActive  bool
	mu        sync.RWMutex
}

// NewSession creates a new session
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		StartTime: time.Now(),
		IsActive:  true,
	}
}

// End marks the session as ended
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.IsActive {
		return
	}
	now := time.Now()
	s.EndTime = &now
	s.IsActive = false
}

// UpdateStats updates session statistics
func (s *Session) UpdateStats(events, messages int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events += events
	s.Messages += messages
}

// GetStats returns session statistics
func (s *Session) GetStats() (events, messages int64, duration time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	end := time.Now()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return s.Events, s.Messages, end.Sub(s.StartTime)
}

// NewApplication creates the application on top of term
func NewApplication(term Terminal, opts Options) (*Application, error) {
	if term == nil {
		return nil, NewAppError(ErrorState, "NO_TERMINAL", "terminal cannot be nil", nil)
	}

	if opts.Keymap == nil {
		opts.Keymap = keymap.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = history.NewRecorder(history.DefaultMaxEntries)
		opts.Recorder.Ignore(event.KindTick, event.KindRender)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Application{
		term:     term,
		keymap:   opts.Keymap,
		recorder: opts.Recorder,
		model:    model.New(),
		logger:   opts.Logger,
		options:  opts,
		session:  NewSession(term.ID()),
	}, nil
}

// Run enters the terminal and dispatches events until the user quits, the
// input closes or ctx is done. The terminal is closed on return.
func (app *Application) Run(ctx context.Context) (err error) {
	app.mu.Lock()
	if app.isRunning {
		app.mu.Unlock()
		return NewAppError(ErrorState, "ALREADY_RUNNING", "application is already running", nil)
	}
	app.isRunning = true
	app.mu.Unlock()

	defer func() {
		if closeErr := app.term.Close(); closeErr != nil && err == nil {
			err = NewAppError(ErrorTerminal, "TEARDOWN", "failed to restore terminal", closeErr)
		}
		app.finish()
	}()

	rx := app.term.Events()
	if rx == nil {
		return NewAppError(ErrorState, "RECEIVER_TAKEN", "event receiver already taken", nil)
	}

	if err := app.term.Enter(); err != nil {
		return NewAppError(ErrorTerminal, "SETUP", "failed to enter terminal", err)
	}
	app.logger.Info("application started", "session", app.session.ID)

	for {
		ev, err := rx.Recv(ctx)
		if err != nil {
			// Cancellation and a closed channel both end the loop normally
			app.logger.Debug("event loop finished", "reason", err)
			return nil
		}

		app.recorder.RecordEvent(ev)
		app.session.UpdateStats(1, 0)

		quit, err := app.handleEvent(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// finish ends the session and saves the history
func (app *Application) finish() {
	app.session.End()

	if app.options.HistoryFile != "" {
		if err := app.recorder.SaveToFile(app.options.HistoryFile, app.options.HistoryFormat); err != nil {
			app.logger.Error("failed to save history", "file", app.options.HistoryFile, "error", err)
		}
	}

	events, messages, duration := app.session.GetStats()
	app.logger.Info("application stopped",
		"counter", app.model.Counter,
		"events", events,
		"messages", messages,
		"duration", duration)

	app.mu.Lock()
	app.isRunning = false
	app.mu.Unlock()
}

// handleEvent dispatches one event and reports whether the loop should end
func (app *Application) handleEvent(ev event.Event) (bool, error) {
	if ev.Kind == event.KindError {
		app.logger.Error("terminal input error", "error", ev.Err)
		return false, nil
	}

	msg, ok := app.messageFor(ev)
	if !ok {
		return false, nil
	}

	if err := app.dispatch(msg); err != nil {
		return false, err
	}

	switch app.model.State {
	case model.ShouldQuit:
		app.logger.Info("quit requested", "event", ev.Kind.String())
		return true, nil

	case model.ShouldSuspend:
		if err := app.suspend(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// messageFor maps an event to the model message it triggers
func (app *Application) messageFor(ev event.Event) (model.Message, bool) {
	switch ev.Kind {
	case event.KindQuit, event.KindClosed:
		return model.Msg(model.MsgQuit), true
	case event.KindTick:
		return model.Msg(model.MsgTick), true
	case event.KindRender:
		return model.Msg(model.MsgRender), true
	case event.KindResize:
		return model.Resize(ev.Width, ev.Height), true
	case event.KindKey:
		action, ok := app.keymap.Lookup(ev.Key)
		if !ok {
			return model.Message{}, false
		}
		return messageForAction(action)
	case event.KindPaste:
		app.logger.Debug("paste ignored", "length", len(ev.Text))
	}
	return model.Message{}, false
}

func messageForAction(action keymap.Action) (model.Message, bool) {
	switch action {
	case keymap.ActionIncrement:
		return model.Msg(model.MsgIncrement), true
	case keymap.ActionDecrement:
		return model.Msg(model.MsgDecrement), true
	case keymap.ActionReset:
		return model.Msg(model.MsgReset), true
	case keymap.ActionQuit:
		return model.Msg(model.MsgQuit), true
	case keymap.ActionSuspend:
		return model.Msg(model.MsgSuspend), true
	case keymap.ActionToggleHelp:
		return model.Msg(model.MsgToggleHelp), true
	}
	return model.Message{}, false
}

// dispatch applies msg and its follow-ups, then draws when msg asks for it
func (app *Application) dispatch(msg model.Message) error {
	for next, ok := msg, true; ok; {
		app.record(next)
		next, ok = model.Update(app.model, next)
	}

	switch msg.Kind {
	case model.MsgResize:
		app.term.Resize(msg.Width, msg.Height)
		return app.draw()
	case model.MsgRender:
		return app.draw()
	}
	return nil
}

func (app *Application) record(msg model.Message) {
	app.session.UpdateStats(0, 1)

	// Tick and render arrive many times a second and would flood the history
	if msg.Kind == model.MsgTick || msg.Kind == model.MsgRender {
		return
	}
	app.logger.Debug("dispatch", "message", msg.String())
	app.recorder.RecordMessage(msg)
}

func (app *Application) draw() error {
	if err := app.term.Draw(func(f *tui.Frame) { ui.View(app.model, app.keymap, f) }); err != nil {
		return NewAppError(ErrorTerminal, "DRAW", "failed to draw frame", err)
	}
	return nil
}

// suspend hands the terminal back to the shell and re-enters it once the
// process is continued
func (app *Application) suspend() error {
	if err := app.term.Suspend(); err != nil {
		return NewAppError(ErrorTerminal, "SUSPEND", "failed to suspend", err)
	}
	if err := app.term.Resume(); err != nil {
		return NewAppError(ErrorTerminal, "RESUME", "failed to resume", err)
	}
	return app.dispatch(model.Msg(model.MsgResume))
}

// Quit asks the running loop to exit after the events already queued
func (app *Application) Quit() error {
	return app.term.RequestQuit()
}

// Model returns the application state
func (app *Application) Model() *model.Model {
	return app.model
}

// Recorder returns the event history
func (app *Application) Recorder() *history.Recorder {
	return app.recorder
}

// GetSession returns the current session
func (app *Application) GetSession() *Session {
	return app.session
}

// IsRunning returns whether the dispatch loop is active
func (app *Application) IsRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return app.isRunning
}
