package models

import "time"

// Calendar tab indexes
const (
	TabDaily  = 0
	TabWeekly = 1
	TabList   = 2
	TabMax    = TabList
)

// NormalizeTabIndex clamps a stored tab index to a valid value. Corrupt or
// out-of-range values fall back to the daily view.
func NormalizeTabIndex(v int) int {
	if v < 0 || v > TabMax {
		return TabDaily
	}
	return v
}

// UserPreference holds per-user UI state that used to live in browser
// localStorage (last active calendar tab).
type UserPreference struct {
	UserID    int       `json:"userId"`
	TabIndex  int       `json:"calendarTabValue"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdatePreferenceRequest represents the request body for saving the tab index
type UpdatePreferenceRequest struct {
	TabIndex int `json:"calendarTabValue"`
}
