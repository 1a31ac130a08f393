package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/models"
)

func slotWithContent(date string, position int, contentID string) models.Slot {
	slot := CreateEmptyBlock(date, position)
	cid := contentID
	slot.ContentID = &cid
	slot.Status = models.SlotStatusTopic
	return slot
}

func TestWindowForPositionFallsBack(t *testing.T) {
	assert.Equal(t, "14:00", WindowForPosition(3).StartTime)
	assert.Equal(t, "18:00", WindowForPosition(4).EndTime)
	assert.Equal(t, WindowForPosition(1), WindowForPosition(42))
}

func TestCreateSessionSlotBlockTypeWins(t *testing.T) {
	content := models.Content{
		ID: "c-1", Title: "Schuldrecht", Description: "AT", Rechtsgebiet: "zivilrecht",
		BlockType: models.BlockTypeTheme,
		Tasks:     []models.Task{{ID: "t-1", Title: "Lesen"}},
	}
	slot := slotWithContent("2026-01-05", 2, "c-1")
	slot.BlockType = models.BlockTypeRepetition

	session := CreateSessionFromBlockAndContent(slot, content, nil)

	assert.Equal(t, slot.ID, session.ID)
	assert.Equal(t, "Schuldrecht", session.Title)
	assert.Equal(t, models.BlockTypeRepetition, session.BlockType)
	assert.Equal(t, 10, session.StartHour)
	assert.Equal(t, "12:00", session.EndTime)
	assert.Len(t, session.Tasks, 1)
}

func TestCreateSessionUsesContentBlockTypeWhenSlotUnset(t *testing.T) {
	content := models.Content{ID: "c-1", BlockType: models.BlockTypeExam}
	session := CreateSessionFromBlockAndContent(slotWithContent("2026-01-05", 1, "c-1"), content, nil)
	assert.Equal(t, models.BlockTypeExam, session.BlockType)
}

func TestCreateSessionTimeOverride(t *testing.T) {
	content := models.Content{ID: "c-1"}
	slot := slotWithContent("2026-01-05", 1, "c-1")

	partial := &models.TimeWindow{StartHour: 9, StartTime: "09:00"}
	assert.Equal(t, 8, CreateSessionFromBlockAndContent(slot, content, partial).StartHour)

	full := &models.TimeWindow{StartHour: 9, Duration: 3, StartTime: "09:00", EndTime: "12:00"}
	session := CreateSessionFromBlockAndContent(slot, content, full)
	assert.Equal(t, 9, session.StartHour)
	assert.Equal(t, 3, session.Duration)
	assert.Equal(t, "12:00", session.EndTime)
}

func TestBuildSessionsForDayDropsDanglingAndSorts(t *testing.T) {
	contents := map[string]models.Content{
		"a": {ID: "a", Title: "A"},
		"b": {ID: "b", Title: "B"},
	}
	slots := []models.Slot{
		slotWithContent("2026-01-05", 3, "a"),
		slotWithContent("2026-01-05", 2, "missing"),
		slotWithContent("2026-01-05", 1, "b"),
		CreateEmptyBlock("2026-01-05", 4),
	}

	sessions := BuildSessionsForDay(slots, contents)

	require.Len(t, sessions, 2)
	assert.Equal(t, "B", sessions[0].Title)
	assert.Equal(t, "A", sessions[1].Title)
	for _, s := range sessions {
		assert.NotEqual(t, "missing", s.ContentID)
	}
}

func TestBuildSessionsForDayStableOnEqualHours(t *testing.T) {
	contents := map[string]models.Content{"a": {ID: "a"}, "b": {ID: "b"}}
	first := slotWithContent("2026-01-05", 7, "a")
	second := slotWithContent("2026-01-05", 8, "b")

	sessions := BuildSessionsForDay([]models.Slot{first, second}, contents)

	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ContentID)
	assert.Equal(t, "b", sessions[1].ContentID)
}

func TestBuildSessionsForRangeOrdersDates(t *testing.T) {
	contents := map[string]models.Content{"a": {ID: "a"}}
	byDate := map[string][]models.Slot{
		"2026-01-07": {slotWithContent("2026-01-07", 1, "a")},
		"2026-01-05": {slotWithContent("2026-01-05", 1, "a")},
		"2026-01-06": CreateDayBlocks("2026-01-06"),
	}

	days := BuildSessionsForRange(byDate, contents)

	require.Len(t, days, 2)
	assert.Equal(t, "2026-01-05", days[0].Date)
	assert.Equal(t, "2026-01-07", days[1].Date)
}
