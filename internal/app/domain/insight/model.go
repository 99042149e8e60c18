// Package insight models generated coaching insights.
package insight

import "time"

// Type identifies which analysis produced an insight.
type Type string

const (
	TypeTimeAudit            Type = "time_audit"
	TypeGoalProgress         Type = "goal_progress"
	TypeProductivityPatterns Type = "productivity_patterns"
)

// Valid reports whether the type is one of the accepted values.
func (t Type) Valid() bool {
	switch t {
	case TypeTimeAudit, TypeGoalProgress, TypeProductivityPatterns:
		return true
	}
	return false
}

// Insight is one generated piece of advice.
type Insight struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Type      Type      `json:"insightType"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
