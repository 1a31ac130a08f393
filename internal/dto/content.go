package dto

import "github.com/noah-isme/lernplan-api/internal/models"

// CreateContentRequest registers a content. A supplied id overwrites the stored content.
type CreateContentRequest struct {
	ID                string        `json:"id"`
	Title             string        `json:"title" validate:"required,max=300"`
	Description       string        `json:"description"`
	Rechtsgebiet      string        `json:"rechtsgebiet"`
	Unterrechtsgebiet string        `json:"unterrechtsgebiet"`
	Kapitel           *string       `json:"kapitel"`
	ThemeID           *string       `json:"themeId"`
	BlockType         string        `json:"blockType" validate:"omitempty,blocktype"`
	Tasks             []models.Task `json:"tasks" validate:"omitempty,dive"`
}
