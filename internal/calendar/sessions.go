package calendar

import (
	"sort"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// The gap between 12:00 and 14:00 is the lunch break.
var positionWindows = map[int]models.TimeWindow{
	1: {StartHour: 8, Duration: 2, StartTime: "08:00", EndTime: "10:00"},
	2: {StartHour: 10, Duration: 2, StartTime: "10:00", EndTime: "12:00"},
	3: {StartHour: 14, Duration: 2, StartTime: "14:00", EndTime: "16:00"},
	4: {StartHour: 16, Duration: 2, StartTime: "16:00", EndTime: "18:00"},
}

// WindowForPosition returns the time window of a position, falling back to position 1.
func WindowForPosition(position int) models.TimeWindow {
	if window, ok := positionWindows[position]; ok {
		return window
	}
	return positionWindows[1]
}

// CreateSessionFromBlockAndContent joins a slot with its content. The slot's block type
// wins over the content default; a complete override replaces the position window.
func CreateSessionFromBlockAndContent(slot models.Slot, content models.Content, override *models.TimeWindow) models.Session {
	window := WindowForPosition(slot.Position)
	if override.Complete() {
		window = *override
	}
	blockType := content.BlockType
	if slot.BlockType != "" {
		blockType = slot.BlockType
	}
	tasks := make([]models.Task, 0, len(content.Tasks)+len(slot.Tasks))
	tasks = append(tasks, content.Tasks...)
	tasks = append(tasks, slot.Tasks...)

	return models.Session{
		ID:                slot.ID,
		ContentID:         content.ID,
		Date:              slot.Date,
		Position:          slot.Position,
		Title:             content.Title,
		Description:       content.Description,
		Rechtsgebiet:      content.Rechtsgebiet,
		Unterrechtsgebiet: content.Unterrechtsgebiet,
		Kapitel:           content.Kapitel,
		BlockType:         blockType,
		IsLocked:          slot.IsLocked,
		IsBlocked:         slot.IsLocked || slot.Status == models.SlotStatusFree,
		Completed:         slot.Completed,
		GroupID:           slot.GroupID,
		GroupSize:         slot.GroupSize,
		GroupIndex:        slot.GroupIndex,
		Tasks:             tasks,
		TimeWindow:        window,
	}
}

// BuildSessionsForDay joins every slot whose content resolves and orders the result by
// start hour. Slots pointing at unknown content are skipped.
func BuildSessionsForDay(slots []models.Slot, contentsByID map[string]models.Content) []models.Session {
	sessions := make([]models.Session, 0, len(slots))
	for _, slot := range slots {
		if slot.ContentID == nil {
			continue
		}
		content, ok := contentsByID[*slot.ContentID]
		if !ok {
			continue
		}
		sessions = append(sessions, CreateSessionFromBlockAndContent(slot, content, nil))
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartHour < sessions[j].StartHour
	})
	return sessions
}

// BuildSessionsForRange builds sessions for every date, dates ascending. Days without
// any resolvable session are omitted.
func BuildSessionsForRange(slotsByDate map[string][]models.Slot, contentsByID map[string]models.Content) []models.DaySessions {
	days := make([]models.DaySessions, 0, len(slotsByDate))
	for _, date := range SortedDates(slotsByDate) {
		sessions := BuildSessionsForDay(slotsByDate[date], contentsByID)
		if len(sessions) == 0 {
			continue
		}
		days = append(days, models.DaySessions{Date: date, Sessions: sessions})
	}
	return days
}
