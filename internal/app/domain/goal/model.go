// Package goal models the goal hierarchy: power goals broken into projects,
// projects broken into next actions.
package goal

import "time"

// Status is the lifecycle state of a power goal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the accepted values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// ProjectStatus is the lifecycle state of a project under a goal.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether the project status is one of the accepted values.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// PowerGoal is a monthly headline goal.
type PowerGoal struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TargetMonth int        `json:"targetMonth,omitempty"`
	TargetYear  int        `json:"targetYear,omitempty"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PowerGoalPatch is a partial update: nil means "leave unchanged".
type PowerGoalPatch struct {
	Title       *string
	Description *string
	TargetMonth *int
	TargetYear  *int
	Status      *Status
	CompletedAt *time.Time
}

// Project is a concrete workstream toward a power goal.
type Project struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	GoalID      int64         `json:"goalId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProjectPatch is a partial update: nil means "leave unchanged".
type ProjectPatch struct {
	GoalID      *int64
	Title       *string
	Description *string
	Status      *ProjectStatus
	CompletedAt *time.Time
}

// NextAction is the smallest actionable step under a project.
type NextAction struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	ProjectID   int64      `json:"projectId"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NextActionPatch is a partial update: nil means "leave unchanged".
type NextActionPatch struct {
	ProjectID   *int64
	Description *string
	Completed   *bool
	CompletedAt *time.Time
}
