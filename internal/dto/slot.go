package dto

import "github.com/noah-isme/lernplan-api/internal/models"

// SlotInput is the wire form of a slot write. Only date and position are required.
type SlotInput struct {
	ID           string        `json:"id"`
	Date         string        `json:"date" validate:"required,isodate"`
	Position     int           `json:"position" validate:"required,min=1"`
	ContentID    *string       `json:"contentId"`
	Status       string        `json:"status" validate:"omitempty,slotstatus"`
	BlockType    string        `json:"blockType" validate:"omitempty,blocktype"`
	IsLocked     bool          `json:"isLocked"`
	Tasks        []models.Task `json:"tasks" validate:"omitempty,dive"`
	GroupID      *string       `json:"groupId"`
	GroupSize    int           `json:"groupSize" validate:"min=0"`
	GroupIndex   int           `json:"groupIndex" validate:"min=0"`
	Completed    bool          `json:"completed"`
	Rechtsgebiet string        `json:"rechtsgebiet"`
	ThemeID      *string       `json:"themeId"`
	Title        string        `json:"title"`
}

// BulkSlotsRequest replaces a set of slots, merged by id with what is stored.
type BulkSlotsRequest struct {
	Slots []SlotInput `json:"slots" validate:"required,dive"`
}

// AssignContentRequest places a content on a day.
type AssignContentRequest struct {
	Date      string `json:"date" validate:"required,isodate"`
	ContentID string `json:"contentId" validate:"required"`
	Size      int    `json:"size" validate:"required,min=1,max=3"`
}

// SwapRequest names two slots by id.
type SwapRequest struct {
	SlotA string `json:"slotA" validate:"required,nefield=SlotB"`
	SlotB string `json:"slotB" validate:"required"`
}

// SlotsResponse wraps the date keyed slot map.
type SlotsResponse struct {
	SlotsByDate map[string][]models.Slot `json:"slotsByDate"`
}
