// Package timeaudit holds the time-audit entry model: activities logged in
// short increments with an energy level and a perceived value tier.
package timeaudit

import "time"

// EnergyLevel is the three-valued qualitative tag for an activity. It is a
// category, never averaged numerically.
type EnergyLevel string

const (
	EnergyRed    EnergyLevel = "red"
	EnergyYellow EnergyLevel = "yellow"
	EnergyGreen  EnergyLevel = "green"
)

// Valid reports whether the level is one of the accepted values.
func (e EnergyLevel) Valid() bool {
	switch e {
	case EnergyRed, EnergyYellow, EnergyGreen:
		return true
	}
	return false
}

// Entry is a single time-audit record. StartTime and EndTime are wall-clock
// "HH:MM" strings within ActivityDate's calendar day; entries spanning
// midnight are not supported.
type Entry struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"userId"`
	ActivityDate time.Time   `json:"activityDate"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Description  string      `json:"description"`
	EnergyLevel  EnergyLevel `json:"energyLevel"`
	DollarValue  int         `json:"dollarValue"`
	Category     string      `json:"category,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// EntryPatch is a partial update: nil means "leave unchanged".
type EntryPatch struct {
	ActivityDate *time.Time
	StartTime    *string
	EndTime      *string
	Description  *string
	EnergyLevel  *EnergyLevel
	DollarValue  *int
	Category     *string
}
