package models

import "time"

// BlockType tags what a slot or content is used for.
type BlockType string

const (
	BlockTypeTheme      BlockType = "theme"
	BlockTypeLernblock  BlockType = "lernblock"
	BlockTypeRepetition BlockType = "repetition"
	BlockTypeExam       BlockType = "exam"
	BlockTypeFree       BlockType = "free"
	BlockTypePrivate    BlockType = "private"
	BlockTypeVacation   BlockType = "vacation"
	BlockTypeBuffer     BlockType = "buffer"
)

// Valid reports whether the block type is one of the known tags.
func (b BlockType) Valid() bool {
	switch b {
	case BlockTypeTheme, BlockTypeLernblock, BlockTypeRepetition, BlockTypeExam,
		BlockTypeFree, BlockTypePrivate, BlockTypeVacation, BlockTypeBuffer:
		return true
	default:
		return false
	}
}

// Task is a checklist entry attached to a content or directly to a slot.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Content is a learning unit that slots reference by id.
type Content struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Rechtsgebiet      string    `json:"rechtsgebiet"`
	Unterrechtsgebiet string    `json:"unterrechtsgebiet"`
	Kapitel           *string   `json:"kapitel,omitempty"`
	ThemeID           *string   `json:"themeId,omitempty"`
	BlockType         BlockType `json:"blockType"`
	Tasks             []Task    `json:"tasks"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
