// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ui holds presentation state that is not tied to an entity: the theme,
a global loading flag, transient notifications and modal visibility.
*/
package ui

import (
	"maps"
	"slices"
	"time"
)

// # Theme

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (theme Theme) Valid() bool {
	return theme == ThemeLight || theme == ThemeDark
}

// Opposite returns the theme ToggleTheme switches to.
func (theme Theme) Opposite() Theme {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// # Notifications

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Durations is how long each kind stays visible.
var Durations = map[Kind]time.Duration{
	KindSuccess: 5 * time.Second,
	KindError:   7 * time.Second,
	KindWarning: 6 * time.Second,
	KindInfo:    5 * time.Second,
}

type Notification struct {
	ID        string        `json:"id"`
	Type      Kind          `json:"type"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	Duration  time.Duration `json:"duration"`
}

// Expired reports whether the notification should be gone at now.
func (notification Notification) Expired(now time.Time) bool {
	return !now.Before(notification.CreatedAt.Add(notification.Duration))
}

// # Modals

type Modal string

const (
	ModalCreatePost  Modal = "createPost"
	ModalEditProfile Modal = "editProfile"
	ModalFollowers   Modal = "followers"
	ModalFollowing   Modal = "following"
)

// Modals lists every modal the client knows about.
var Modals = []Modal{ModalCreatePost, ModalEditProfile, ModalFollowers, ModalFollowing}

// # State

type State struct {
	Theme         Theme          `json:"theme"`
	IsLoading     bool           `json:"isLoading"`
	Notifications []Notification `json:"notifications"`
	Modals        map[Modal]bool `json:"modals"`
}

func Initial() State {
	modals := make(map[Modal]bool, len(Modals))
	for _, modal := range Modals {
		modals[modal] = false
	}
	return State{Theme: ThemeLight, Notifications: []Notification{}, Modals: modals}
}

// IsOpen reports whether modal is visible.
func (current State) IsOpen(modal Modal) bool {
	return current.Modals[modal]
}

// # Events

type Event interface{ uiEvent() }

type (
	ThemeSet   struct{ Theme Theme }
	LoadingSet struct{ Loading bool }

	Notified struct{ Notification Notification }
	Removed  struct{ ID string }
	Pruned   struct{ Now time.Time }
	Cleared  struct{}

	ModalSet struct {
		Modal Modal
		Open  bool
	}
	ModalsClosed struct{}
)

func (ThemeSet) uiEvent()     {}
func (LoadingSet) uiEvent()   {}
func (Notified) uiEvent()     {}
func (Removed) uiEvent()      {}
func (Pruned) uiEvent()       {}
func (Cleared) uiEvent()      {}
func (ModalSet) uiEvent()     {}
func (ModalsClosed) uiEvent() {}

// # Reducer

func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case ThemeSet:
		next.Theme = event.Theme

	case LoadingSet:
		next.IsLoading = event.Loading

	case Notified:
		next.Notifications = append(slices.Clone(current.Notifications), event.Notification)

	case Removed:
		next.Notifications = slices.DeleteFunc(slices.Clone(current.Notifications), func(notification Notification) bool {
			return notification.ID == event.ID
		})

	case Pruned:
		next.Notifications = slices.DeleteFunc(slices.Clone(current.Notifications), func(notification Notification) bool {
			return notification.Expired(event.Now)
		})

	case Cleared:
		next.Notifications = []Notification{}

	case ModalSet:
		next.Modals = maps.Clone(current.Modals)
		if next.Modals == nil {
			next.Modals = map[Modal]bool{}
		}
		next.Modals[event.Modal] = event.Open

	case ModalsClosed:
		next.Modals = Initial().Modals
	}

	return next
}
