package models

import "time"

// Verteilungsmodus controls how subject areas are spread across days.
type Verteilungsmodus string

const (
	VerteilungGemischt    Verteilungsmodus = "gemischt"
	VerteilungFokussiert  Verteilungsmodus = "fokussiert"
	VerteilungThemenweise Verteilungsmodus = "themenweise"
)

// Valid reports whether the mode is known.
func (m Verteilungsmodus) Valid() bool {
	switch m {
	case VerteilungGemischt, VerteilungFokussiert, VerteilungThemenweise:
		return true
	default:
		return false
	}
}

// PlanMetadata carries the per-plan policy read by the rule engine.
type PlanMetadata struct {
	ID                      string             `json:"id"`
	Name                    string             `json:"name"`
	StartDate               string             `json:"startDate,omitempty"`
	EndDate                 string             `json:"endDate,omitempty"`
	BlocksPerDay            int                `json:"blocksPerDay,omitempty"`
	RechtsgebieteGewichtung map[string]float64 `json:"rechtsgebieteGewichtung"`
	Verteilungsmodus        Verteilungsmodus   `json:"verteilungsmodus"`
	UpdatedAt               time.Time          `json:"updatedAt"`
}

// Mode returns the distribution mode, defaulting to gemischt.
func (p *PlanMetadata) Mode() Verteilungsmodus {
	if p == nil || !p.Verteilungsmodus.Valid() {
		return VerteilungGemischt
	}
	return p.Verteilungsmodus
}

// PlanEvent is broadcast when plan metadata or its slots change.
type PlanEvent struct {
	PlanID     string    `json:"planId"`
	UserID     string    `json:"userId,omitempty"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
}

const (
	PlanEventUpdated      = "plan.updated"
	PlanEventSlotsChanged = "plan.slots_changed"
)
