package calendar

import (
	"github.com/noah-isme/lernplan-api/internal/models"
)

// UntitledPlaceholder is the title given to migrated content without one.
const UntitledPlaceholder = "Ohne Titel"

// MigrateLegacyBlock splits a legacy slot into a content and a slot referencing it.
func MigrateLegacyBlock(legacy models.LegacyBlock) (models.Content, models.Slot) {
	ts := now()
	createdAt := ts
	if legacy.CreatedAt != nil && !legacy.CreatedAt.IsZero() {
		createdAt = legacy.CreatedAt.UTC()
	}

	contentID := ""
	if legacy.TopicID != nil && *legacy.TopicID != "" {
		contentID = *legacy.TopicID
	} else {
		contentID = newID()
	}
	title := legacy.Title
	if title == "" {
		title = UntitledPlaceholder
	}
	blockType := legacy.BlockType
	if !blockType.Valid() {
		blockType = models.BlockTypeTheme
	}

	content := models.Content{
		ID:                contentID,
		Title:             title,
		Description:       legacy.Description,
		Rechtsgebiet:      legacy.Rechtsgebiet,
		Unterrechtsgebiet: legacy.Unterrechtsgebiet,
		Kapitel:           legacy.Kapitel,
		ThemeID:           legacy.ThemeID,
		BlockType:         blockType,
		Tasks:             copyTasks(legacy.Tasks),
		CreatedAt:         createdAt,
		UpdatedAt:         ts,
	}

	position := legacy.Position
	if position < 1 {
		position = 1
	}
	slotID := legacy.ID
	if slotID == "" {
		slotID = models.SlotID(legacy.Date, position)
	}
	status := models.SlotStatusTopic
	if blockType == models.BlockTypeFree {
		status = models.SlotStatusFree
	}
	cid := contentID
	slot := models.Slot{
		ID:           slotID,
		Date:         legacy.Date,
		Position:     position,
		ContentID:    &cid,
		Status:       status,
		BlockType:    blockType,
		IsLocked:     legacy.IsLocked,
		Tasks:        []models.Task{},
		GroupID:      legacy.GroupID,
		GroupSize:    legacy.GroupSize,
		GroupIndex:   legacy.GroupIndex,
		Completed:    legacy.Completed,
		Rechtsgebiet: legacy.Rechtsgebiet,
		ThemeID:      legacy.ThemeID,
		Title:        title,
		CreatedAt:    createdAt,
		UpdatedAt:    ts,
	}
	return content, slot
}

// MigrateLegacyData migrates every legacy slot of every date into one content map and
// normalized slot arrays. Later slots win when two resolve to the same content id.
func MigrateLegacyData(legacyByDate map[string][]models.LegacyBlock) models.MigrationResult {
	result := models.MigrationResult{
		ContentsByID: make(map[string]models.Content),
		SlotsByDate:  make(map[string][]models.Slot, len(legacyByDate)),
	}
	for _, date := range SortedDates(legacyByDate) {
		blocks := legacyByDate[date]
		slots := make([]models.Slot, 0, len(blocks))
		for _, legacy := range blocks {
			if legacy.Date == "" {
				legacy.Date = date
			}
			content, slot := MigrateLegacyBlock(legacy)
			result.ContentsByID[content.ID] = content
			slots = append(slots, slot)
		}
		result.SlotsByDate[date] = slots
	}
	return result
}

func copyTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
