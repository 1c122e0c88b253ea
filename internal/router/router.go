// Package router tracks which screen is showing. Transitions are driven only
// by user action; there are no guards and nothing asynchronous.
package router

import (
	"fmt"
	"strings"
)

// View identifies one screen.
type View int

const (
	// Dashboard is the initial screen.
	Dashboard View = iota
	// Details lists the full inventory.
	Details
	// Add is the capture and item form.
	Add
	// Insurance shows coverage against the policy limit.
	Insurance
	// Settings holds the policy limit and data controls.
	Settings
)

// Views lists every screen in tab order.
var Views = []View{Dashboard, Details, Add, Insurance, Settings}

func (v View) String() string {
	switch v {
	case Dashboard:
		return "DASHBOARD"
	case Details:
		return "DETAILS"
	case Add:
		return "ADD"
	case Insurance:
		return "INSURANCE"
	case Settings:
		return "SETTINGS"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Title is the tab label.
func (v View) Title() string {
	switch v {
	case Dashboard:
		return "Home"
	case Details:
		return "Inventory"
	case Add:
		return "Add Item"
	case Insurance:
		return "Insurance"
	case Settings:
		return "Settings"
	default:
		return v.String()
	}
}

// ParseView accepts the view name in any case.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if strings.EqualFold(v.String(), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return Dashboard, fmt.Errorf("unknown view %q", s)
}

// Router holds the current view and the hook that drops the add-item draft.
type Router struct {
	onDiscard func()
	current   View
	previous  View
}

// New starts on the dashboard. onDiscard runs whenever the add screen is
// left; it may be nil.
func New(onDiscard func()) *Router {
	return &Router{
		current:   Dashboard,
		previous:  Dashboard,
		onDiscard: onDiscard,
	}
}

// Current returns the showing view.
func (r *Router) Current() View {
	return r.current
}

// Previous returns the view shown before the last transition.
func (r *Router) Previous() View {
	return r.previous
}

// Navigate switches to v unconditionally. Leaving Add discards the draft.
// It reports whether the view changed.
func (r *Router) Navigate(v View) bool {
	if v == r.current {
		return false
	}
	if r.current == Add && r.onDiscard != nil {
		r.onDiscard()
	}
	r.previous = r.current
	r.current = v
	return true
}

// Back returns to the dashboard.
func (r *Router) Back() bool {
	return r.Navigate(Dashboard)
}

// SaveCompleted follows a successful save: Add goes to Dashboard and the
// draft is discarded.
func (r *Router) SaveCompleted() {
	if r.current != Add {
		return
	}
	r.Navigate(Dashboard)
}

// Cleared follows a confirmed clear-all, which always lands on Dashboard.
func (r *Router) Cleared() {
	r.Navigate(Dashboard)
}

// ForKey maps the tab keys "1" through "5" onto views.
func ForKey(k string) (View, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '5' {
		return Dashboard, false
	}
	return Views[int(k[0]-'1')], true
}
