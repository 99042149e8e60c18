// Package planning models the daily execution layer: one plan per day and the
// three scheduled goal reviews within it.
package planning

import "time"

// ReviewTime is the slot of day a goal review belongs to.
type ReviewTime string

const (
	ReviewMorning   ReviewTime = "morning"
	ReviewAfternoon ReviewTime = "afternoon"
	ReviewEvening   ReviewTime = "evening"
)

// Valid reports whether the review time is one of the accepted values.
func (r ReviewTime) Valid() bool {
	switch r {
	case ReviewMorning, ReviewAfternoon, ReviewEvening:
		return true
	}
	return false
}

// DailyPlan is the plan for one calendar day. KeyTasks holds a JSON-encoded
// task list; the server treats it as opaque text.
type DailyPlan struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	PlanDate       time.Time `json:"planDate"`
	First90MinTask string    `json:"first90MinTask,omitempty"`
	KeyTasks       string    `json:"keyTasks,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DailyPlanPatch is a partial update: nil means "leave unchanged".
type DailyPlanPatch struct {
	PlanDate       *time.Time
	First90MinTask *string
	KeyTasks       *string
	Notes          *string
	Completed      *bool
}

// GoalReview marks whether a given slot's review happened on a given day.
type GoalReview struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	ReviewDate  time.Time  `json:"reviewDate"`
	ReviewTime  ReviewTime `json:"reviewTime"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GoalReviewPatch is a partial update: nil means "leave unchanged".
type GoalReviewPatch struct {
	ReviewDate  *time.Time
	ReviewTime  *ReviewTime
	Completed   *bool
	CompletedAt *time.Time
}
