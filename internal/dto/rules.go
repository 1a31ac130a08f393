package dto

import (
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// ViolationReport is the payload of the violation endpoint.
type ViolationReport struct {
	PlanID      string             `json:"planId"`
	Mode        string             `json:"verteilungsmodus"`
	Violations  []models.Violation `json:"violations"`
	GeneratedAt time.Time          `json:"generatedAt"`
	// Cached is set when the report came from the rule cache.
	Cached bool `json:"cached"`
}

// RedistributeRequest asks for a redistribution preview, or applies it.
type RedistributeRequest struct {
	FromDate string `json:"fromDate" validate:"omitempty,isodate"`
	Apply    bool   `json:"apply"`
}

// RedistributeResponse reports a redistribution together with the violations that
// would remain afterwards.
type RedistributeResponse struct {
	SlotsByDate map[string][]models.Slot `json:"slotsByDate"`
	Unplaced    []models.Slot            `json:"unplaced"`
	Moved       int                      `json:"moved"`
	Applied     bool                     `json:"applied"`
	Violations  []models.Violation       `json:"violations"`
}

// SwapResponse reports a swap attempt.
type SwapResponse struct {
	Validation models.SwapValidation `json:"validation"`
	SlotA      *models.Slot          `json:"slotA,omitempty"`
	SlotB      *models.Slot          `json:"slotB,omitempty"`
}

// MigrateRequest carries legacy slots keyed by date.
type MigrateRequest struct {
	Blocks map[string][]models.LegacyBlock `json:"blocks" validate:"required"`
}

// MigrateResponse summarises a migration.
type MigrateResponse struct {
	Contents int `json:"contents"`
	Slots    int `json:"slots"`
	Dates    int `json:"dates"`
}
