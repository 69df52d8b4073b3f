// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/uuid"
)

// Slice owns the ui state. It is also the gateway's notifier.
type Slice struct {
	store   *state.Store[State, Event]
	storage persist.Store
	now     func() time.Time
	logger  *slog.Logger
}

/*
New returns a [Slice] with the light theme.

Parameters:
  - storage: persist.Store (theme persistence)
  - now: func() time.Time (nil means time.Now)
  - logger: *slog.Logger
*/
func New(storage persist.Store, now func() time.Time, logger *slog.Logger) *Slice {
	if now == nil {
		now = time.Now
	}
	return &Slice{
		store:   state.New(Initial(), Reduce),
		storage: storage,
		now:     now,
		logger:  logger,
	}
}

func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

// # Theme

// RestoreTheme applies the persisted theme. Unknown values are ignored.
func (slice *Slice) RestoreTheme(context context.Context) (Theme, error) {
	raw, ok, err := slice.storage.Get(context, persist.KeyTheme)
	if err != nil {
		return slice.State().Theme, fmt.Errorf("ui_theme_restore_failed: %w", err)
	}

	if theme := Theme(raw); ok && theme.Valid() {
		slice.store.Dispatch(ThemeSet{Theme: theme})
	}
	return slice.State().Theme, nil
}

// SetTheme applies and persists theme.
func (slice *Slice) SetTheme(context context.Context, theme Theme) error {
	if err := (&validate.Validator{}).OneOf("theme", string(theme), string(ThemeLight), string(ThemeDark)).Err(); err != nil {
		return err
	}

	slice.store.Dispatch(ThemeSet{Theme: theme})

	if err := slice.storage.Set(context, persist.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("ui_theme_persist_failed: %w", err)
	}
	return nil
}

func (slice *Slice) ToggleTheme(context context.Context) (Theme, error) {
	theme := slice.State().Theme.Opposite()
	return theme, slice.SetTheme(context, theme)
}

func (slice *Slice) SetLoading(loading bool) {
	slice.store.Dispatch(LoadingSet{Loading: loading})
}

// # Notifications

// Notify shows message for the kind's duration and returns its id.
func (slice *Slice) Notify(kind Kind, message string) string {
	notification := Notification{
		ID:        uuid.New(),
		Type:      kind,
		Message:   message,
		CreatedAt: slice.now(),
		Duration:  Durations[kind],
	}
	slice.store.Dispatch(Notified{Notification: notification})
	slice.logger.Debug("ui_notified", slog.String("type", string(kind)), slog.String("message", message))
	return notification.ID
}

// NotifyError shows an error notification.
func (slice *Slice) NotifyError(message string) {
	slice.Notify(KindError, message)
}

func (slice *Slice) Success(message string) string { return slice.Notify(KindSuccess, message) }
func (slice *Slice) Warn(message string) string    { return slice.Notify(KindWarning, message) }
func (slice *Slice) Info(message string) string    { return slice.Notify(KindInfo, message) }

func (slice *Slice) Remove(id string) {
	slice.store.Dispatch(Removed{ID: id})
}

// Prune drops every notification that has outlived its duration at now.
func (slice *Slice) Prune(now time.Time) {
	slice.store.Dispatch(Pruned{Now: now})
}

func (slice *Slice) Clear() {
	slice.store.Dispatch(Cleared{})
}

// # Modals

func (slice *Slice) Open(modal Modal) {
	slice.store.Dispatch(ModalSet{Modal: modal, Open: true})
}

func (slice *Slice) Close(modal Modal) {
	slice.store.Dispatch(ModalSet{Modal: modal, Open: false})
}

func (slice *Slice) CloseAll() {
	slice.store.Dispatch(ModalsClosed{})
}
