// Package calendar holds the pure slot-grid, session and rule logic of a study plan.
// Nothing in this package performs I/O; callers own persistence.
package calendar

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// SlotsPerDay is the fixed number of positions materialized for every calendar day.
const SlotsPerDay = 3

// DateLayout is the ISO date format used for slot dates and ids.
const DateLayout = "2006-01-02"

var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// CreateEmptyBlock returns an unlocked, empty slot for date and position.
func CreateEmptyBlock(date string, position int) models.Slot {
	ts := now()
	return models.Slot{
		ID:        models.SlotID(date, position),
		Date:      date,
		Position:  position,
		Status:    models.SlotStatusEmpty,
		Tasks:     []models.Task{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// CreateFreeBlock returns a slot that is blocked for planning.
func CreateFreeBlock(date string, position int) models.Slot {
	slot := CreateEmptyBlock(date, position)
	slot.Status = models.SlotStatusFree
	slot.BlockType = models.BlockTypeFree
	return slot
}

// CreateDayBlocks materializes the empty positions 1..SlotsPerDay of a day.
func CreateDayBlocks(date string) []models.Slot {
	slots := make([]models.Slot, 0, SlotsPerDay)
	for pos := 1; pos <= SlotsPerDay; pos++ {
		slots = append(slots, CreateEmptyBlock(date, pos))
	}
	return slots
}

// CountFreeBlocks counts empty slots.
func CountFreeBlocks(slots []models.Slot) int {
	count := 0
	for _, slot := range slots {
		if slot.IsEmpty() {
			count++
		}
	}
	return count
}

// CanPlaceTopic reports whether size empty slots exist, contiguous or not.
func CanPlaceTopic(slots []models.Slot, size int) bool {
	if size <= 0 {
		return false
	}
	return CountFreeBlocks(slots) >= size
}

// GetAvailableBlockPositions returns the first size empty positions in ascending
// order, or nil when the day cannot hold that many.
func GetAvailableBlockPositions(slots []models.Slot, size int) []int {
	if !CanPlaceTopic(slots, size) {
		return nil
	}
	positions := make([]int, 0, len(slots))
	for _, slot := range slots {
		if slot.IsEmpty() {
			positions = append(positions, slot.Position)
		}
	}
	sort.Ints(positions)
	return positions[:size]
}

// CreateTopicBlocks builds one slot per position for content, all sharing a fresh
// group id. Positions are sorted first so group index and position agree.
func CreateTopicBlocks(date string, positions []int, content models.Content) []models.Slot {
	if len(positions) == 0 {
		return nil
	}
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)

	groupID := newID()
	contentID := content.ID
	ts := now()
	slots := make([]models.Slot, 0, len(sorted))
	for idx, pos := range sorted {
		gid := groupID
		cid := contentID
		slots = append(slots, models.Slot{
			ID:           models.SlotID(date, pos),
			Date:         date,
			Position:     pos,
			ContentID:    &cid,
			Status:       models.SlotStatusTopic,
			BlockType:    content.BlockType,
			Tasks:        []models.Task{},
			GroupID:      &gid,
			GroupSize:    len(sorted),
			GroupIndex:   idx,
			Rechtsgebiet: content.Rechtsgebiet,
			ThemeID:      content.ThemeID,
			Title:        content.Title,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		})
	}
	return slots
}

// UpdateDayBlocks overwrites the positions present in updates and keeps the rest.
// The result always has the length of current.
func UpdateDayBlocks(current, updates []models.Slot) []models.Slot {
	byPosition := make(map[int]models.Slot, len(updates))
	for _, slot := range updates {
		byPosition[slot.Position] = slot
	}
	result := make([]models.Slot, len(current))
	for i, slot := range current {
		if replacement, ok := byPosition[slot.Position]; ok {
			result[i] = replacement
			continue
		}
		result[i] = slot
	}
	return result
}

// GroupBlocksByTopic partitions grouped slots by group id. Ungrouped slots, including
// single assignments, are not part of the result.
func GroupBlocksByTopic(slots []models.Slot) map[string][]models.Slot {
	groups := make(map[string][]models.Slot)
	for _, slot := range slots {
		if slot.GroupID == nil || *slot.GroupID == "" {
			continue
		}
		groups[*slot.GroupID] = append(groups[*slot.GroupID], slot)
	}
	return groups
}

// SortByPosition returns a copy of slots ordered by position.
func SortByPosition(slots []models.Slot) []models.Slot {
	out := make([]models.Slot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// SortedDates returns the keys of a date map in ascending order.
func SortedDates[T any](byDate map[string]T) []string {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
