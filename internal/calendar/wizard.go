package calendar

import (
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// WeekStructure marks which weekdays are learning days.
type WeekStructure map[time.Weekday]bool

// GenerateWizardSlots materializes SlotsPerDay slots for every day in [start, end].
// Non-learning days and positions beyond blocksPerDay are marked free.
func GenerateWizardSlots(start, end time.Time, week WeekStructure, blocksPerDay int) map[string][]models.Slot {
	result := make(map[string][]models.Slot)
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return result
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		learning := week[day.Weekday()]
		slots := make([]models.Slot, 0, SlotsPerDay)
		for pos := 1; pos <= SlotsPerDay; pos++ {
			if !learning || pos > blocksPerDay {
				slots = append(slots, CreateFreeBlock(date, pos))
				continue
			}
			slots = append(slots, CreateEmptyBlock(date, pos))
		}
		result[date] = slots
	}
	return result
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
