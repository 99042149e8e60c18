// Package pomodoro models focus sessions.
package pomodoro

import "time"

// DefaultDurationSeconds is the standard session length when the caller does
// not supply one.
const DefaultDurationSeconds = 1500

// Session is one timed focus block. Duration is in seconds.
type Session struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	StartedAt       time.Time  `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	Duration        int        `json:"duration"`
	TaskDescription string     `json:"taskDescription,omitempty"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SessionPatch is a partial update: nil means "leave unchanged".
type SessionPatch struct {
	CompletedAt     *time.Time
	Duration        *int
	TaskDescription *string
	Completed       *bool
}
