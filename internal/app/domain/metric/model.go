// Package metric models the two measurement tracks: the single north-star
// metric series and the broader weekly scorecard.
package metric

import "time"

// ScorecardStatus is the qualitative rating attached to a scorecard reading.
type ScorecardStatus string

const (
	ScorecardRed    ScorecardStatus = "red"
	ScorecardYellow ScorecardStatus = "yellow"
	ScorecardGreen  ScorecardStatus = "green"
)

// Valid reports whether the status is one of the accepted values.
func (s ScorecardStatus) Valid() bool {
	switch s {
	case ScorecardRed, ScorecardYellow, ScorecardGreen:
		return true
	}
	return false
}

// NorthStar is a dated reading of the headline metric.
type NorthStar struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	MetricName   string    `json:"metricName"`
	Unit         string    `json:"unit"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	RecordedDate time.Time `json:"recordedDate"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NorthStarPatch is a partial update: nil means "leave unchanged".
type NorthStarPatch struct {
	MetricName   *string
	Unit         *string
	TargetValue  *float64
	CurrentValue *float64
	RecordedDate *time.Time
	Notes        *string
}

// Scorecard is a dated reading of one scorecard metric.
type Scorecard struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	MetricName   string          `json:"metricName"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	TargetValue  *float64        `json:"targetValue,omitempty"`
	CurrentValue float64         `json:"currentValue"`
	RecordedDate time.Time       `json:"recordedDate"`
	Status       ScorecardStatus `json:"status,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ScorecardPatch is a partial update: nil means "leave unchanged".
type ScorecardPatch struct {
	MetricName   *string
	Category     *string
	Unit         *string
	TargetValue  *float64
	CurrentValue *float64
	RecordedDate *time.Time
	Status       *ScorecardStatus
	Notes        *string
}
