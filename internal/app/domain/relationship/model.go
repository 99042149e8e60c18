// Package relationship models the people around the user and the energy they
// bring.
package relationship

import "time"

// EnergyImpact rates how a contact affects the user's energy, on the same
// red/yellow/green scale the time audit uses.
type EnergyImpact string

const (
	ImpactRed    EnergyImpact = "red"
	ImpactYellow EnergyImpact = "yellow"
	ImpactGreen  EnergyImpact = "green"
)

// Valid reports whether the impact is one of the accepted values.
func (e EnergyImpact) Valid() bool {
	switch e {
	case ImpactRed, ImpactYellow, ImpactGreen:
		return true
	}
	return false
}

// Contact is one tracked relationship.
type Contact struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"userId"`
	ContactName     string       `json:"contactName"`
	Relationship    string       `json:"relationship,omitempty"`
	EnergyImpact    EnergyImpact `json:"energyImpact"`
	Notes           string       `json:"notes,omitempty"`
	BoundarySet     bool         `json:"boundarySet"`
	LastInteraction *time.Time   `json:"lastInteraction,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// ContactPatch is a partial update: nil means "leave unchanged".
type ContactPatch struct {
	ContactName     *string
	Relationship    *string
	EnergyImpact    *EnergyImpact
	Notes           *string
	BoundarySet     *bool
	LastInteraction *time.Time
}
