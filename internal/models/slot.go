package models

import (
	"strconv"
	"time"
)

// SlotStatus describes whether a slot can take an assignment.
type SlotStatus string

const (
	SlotStatusEmpty SlotStatus = "empty"
	SlotStatusTopic SlotStatus = "topic"
	SlotStatusFree  SlotStatus = "free"
)

// Valid reports whether the status is known.
func (s SlotStatus) Valid() bool {
	return s == SlotStatusEmpty || s == SlotStatusTopic || s == SlotStatusFree
}

// Slot is one fixed position within one calendar day.
type Slot struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Position     int        `json:"position"`
	ContentID    *string    `json:"contentId,omitempty"`
	Status       SlotStatus `json:"status"`
	BlockType    BlockType  `json:"blockType,omitempty"`
	IsLocked     bool       `json:"isLocked"`
	Tasks        []Task     `json:"tasks"`
	GroupID      *string    `json:"groupId,omitempty"`
	GroupSize    int        `json:"groupSize,omitempty"`
	GroupIndex   int        `json:"groupIndex,omitempty"`
	Completed    bool       `json:"completed"`
	Rechtsgebiet string     `json:"rechtsgebiet,omitempty"`
	ThemeID      *string    `json:"themeId,omitempty"`
	// Title is a display cache. Rules only fall back to it when ThemeID is missing.
	Title     string     `json:"title,omitempty"`
	LockedAt  *time.Time `json:"lockedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsEmpty reports whether the slot is available for assignment.
func (s Slot) IsEmpty() bool {
	return s.Status == SlotStatusEmpty
}

// IsFilled reports whether the slot carries content.
func (s Slot) IsFilled() bool {
	if s.Status == SlotStatusFree {
		return false
	}
	return s.ContentID != nil || s.Status == SlotStatusTopic
}

// ThemeKey returns the key slots are clustered by in by-topic planning.
// Title is only a compatibility fallback for slots written before theme ids existed.
func (s Slot) ThemeKey() string {
	if s.ThemeID != nil && *s.ThemeID != "" {
		return *s.ThemeID
	}
	return s.Title
}

// SlotID derives the deterministic slot identifier.
func SlotID(date string, position int) string {
	return date + "-" + strconv.Itoa(position)
}
