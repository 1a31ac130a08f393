package models

import "time"

// LegacyBlock is the flat slot record written by older clients, with the
// learning content embedded directly in the slot.
type LegacyBlock struct {
	ID                string     `json:"id"`
	Date              string     `json:"date"`
	Position          int        `json:"position"`
	TopicID           *string    `json:"topicId,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Rechtsgebiet      string     `json:"rechtsgebiet"`
	Unterrechtsgebiet string     `json:"unterrechtsgebiet"`
	Kapitel           *string    `json:"kapitel,omitempty"`
	ThemeID           *string    `json:"themeId,omitempty"`
	BlockType         BlockType  `json:"blockType"`
	Status            SlotStatus `json:"status"`
	Tasks             []Task     `json:"tasks"`
	IsLocked          bool       `json:"isLocked"`
	Completed         bool       `json:"completed"`
	GroupID           *string    `json:"groupId,omitempty"`
	GroupSize         int        `json:"groupSize,omitempty"`
	GroupIndex        int        `json:"groupIndex,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// MigrationResult is the normalized form of a legacy payload.
type MigrationResult struct {
	ContentsByID map[string]Content `json:"contentsById"`
	SlotsByDate  map[string][]Slot  `json:"slotsByDate"`
}
