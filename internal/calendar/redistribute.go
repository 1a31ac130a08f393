package calendar

import (
	"sort"
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// Redistribution is the outcome of RedistributeBlocks.
type Redistribution struct {
	SlotsByDate map[string][]models.Slot `json:"slotsByDate"`
	// Unplaced holds entries that found no target slot. They are not part of SlotsByDate.
	Unplaced []models.Slot `json:"unplaced"`
	Moved    int           `json:"moved"`
}

type target struct {
	base  models.Slot
	entry *models.Slot
}

// partition splits the plan into slots that must stay, content that may move and
// the positions it may land on. Past days, completed, locked and free slots stay.
type partition struct {
	kept    map[string][]models.Slot
	movable []models.Slot
	targets []*target
}

func partitionSlots(slotsByDate map[string][]models.Slot, refDate string) partition {
	p := partition{kept: make(map[string][]models.Slot, len(slotsByDate))}
	for _, date := range SortedDates(slotsByDate) {
		p.kept[date] = []models.Slot{}
		for _, slot := range SortByPosition(slotsByDate[date]) {
			slot.Date = date
			if isProtected(slot, date, refDate) {
				p.kept[date] = append(p.kept[date], slot)
				continue
			}
			base := slot
			if slot.IsFilled() {
				p.movable = append(p.movable, slot)
				base = vacate(slot, date)
			}
			p.targets = append(p.targets, &target{base: base})
		}
	}
	return p
}

func isProtected(slot models.Slot, date, refDate string) bool {
	return date < refDate || slot.Completed || slot.IsLocked || slot.Status == models.SlotStatusFree
}

func vacate(slot models.Slot, date string) models.Slot {
	empty := CreateEmptyBlock(date, slot.Position)
	empty.ID = slot.ID
	empty.CreatedAt = slot.CreatedAt
	return empty
}

// RedistributeBlocks reassigns future, incomplete content across the free positions of
// the plan according to the distribution mode. A zero from means today. The input is
// never modified.
func RedistributeBlocks(slotsByDate map[string][]models.Slot, meta *models.PlanMetadata, from time.Time) Redistribution {
	if from.IsZero() {
		from = now()
	}
	refDate := from.Format(DateLayout)
	p := partitionSlots(slotsByDate, refDate)

	order, queues := queueByArea(p.movable)
	switch meta.Mode() {
	case models.VerteilungFokussiert:
		assignFocused(p.targets, order, queues)
	case models.VerteilungThemenweise:
		assignByTopic(p.targets, p.movable)
	default:
		assignRoundRobin(p.targets, order, queues)
	}

	result := Redistribution{
		SlotsByDate: make(map[string][]models.Slot, len(p.kept)),
		Unplaced:    []models.Slot{},
	}
	placed := make(map[string]bool, len(p.movable))
	broken := make(map[string]bool)
	byDate := make(map[string][]models.Slot, len(p.kept))
	for date, slots := range p.kept {
		byDate[date] = append([]models.Slot{}, slots...)
	}
	for _, t := range p.targets {
		if t.entry == nil {
			byDate[t.base.Date] = append(byDate[t.base.Date], t.base)
			continue
		}
		placed[entryKey(*t.entry)] = true
		if t.entry.Date != t.base.Date || t.entry.Position != t.base.Position {
			result.Moved++
			markGroup(broken, *t.entry)
		}
		byDate[t.base.Date] = append(byDate[t.base.Date], place(*t.entry, t.base))
	}
	for _, entry := range p.movable {
		if !placed[entryKey(entry)] {
			result.Unplaced = append(result.Unplaced, entry)
			markGroup(broken, entry)
		}
	}
	for date, slots := range byDate {
		result.SlotsByDate[date] = SortByPosition(dissolveGroups(slots, broken))
	}
	return result
}

func markGroup(broken map[string]bool, slot models.Slot) {
	if slot.GroupID != nil {
		broken[*slot.GroupID] = true
	}
}

// dissolveGroups clears the group of every slot whose group lost a member, so a
// group never claims more members than it still has.
func dissolveGroups(slots []models.Slot, broken map[string]bool) []models.Slot {
	if len(broken) == 0 {
		return slots
	}
	for i := range slots {
		if slots[i].GroupID != nil && broken[*slots[i].GroupID] {
			slots[i].GroupID = nil
			slots[i].GroupSize = 0
			slots[i].GroupIndex = 0
		}
	}
	return slots
}

func entryKey(slot models.Slot) string {
	return models.SlotID(slot.Date, slot.Position)
}

// queueByArea groups entries by subject area, areas in order of first appearance.
func queueByArea(entries []models.Slot) ([]string, map[string][]models.Slot) {
	var order []string
	queues := make(map[string][]models.Slot)
	for _, entry := range entries {
		if _, seen := queues[entry.Rechtsgebiet]; !seen {
			order = append(order, entry.Rechtsgebiet)
		}
		queues[entry.Rechtsgebiet] = append(queues[entry.Rechtsgebiet], entry)
	}
	return order, queues
}

// assignRoundRobin drains one entry per area per pass onto targets in (date, position) order.
func assignRoundRobin(targets []*target, order []string, queues map[string][]models.Slot) {
	next := 0
	for next < len(targets) {
		placed := false
		for _, area := range order {
			if next >= len(targets) {
				return
			}
			queue := queues[area]
			if len(queue) == 0 {
				continue
			}
			entry := queue[0]
			targets[next].entry = &entry
			queues[area] = queue[1:]
			next++
			placed = true
		}
		if !placed {
			return
		}
	}
}

// assignFocused gives each target date to a single area, filling the date before
// moving on. The area advances only once a date received something from it.
func assignFocused(targets []*target, order []string, queues map[string][]models.Slot) {
	if len(order) == 0 {
		return
	}
	var dates []string
	byDate := make(map[string][]*target)
	for _, t := range targets {
		if _, ok := byDate[t.base.Date]; !ok {
			dates = append(dates, t.base.Date)
		}
		byDate[t.base.Date] = append(byDate[t.base.Date], t)
	}
	sort.Strings(dates)

	current := 0
	for _, date := range dates {
		areaIdx, ok := nextNonEmpty(order, queues, current)
		if !ok {
			return
		}
		area := order[areaIdx]
		received := false
		for _, t := range byDate[date] {
			queue := queues[area]
			if len(queue) == 0 {
				break
			}
			entry := queue[0]
			t.entry = &entry
			queues[area] = queue[1:]
			received = true
		}
		current = areaIdx
		if received {
			current = (areaIdx + 1) % len(order)
		}
	}
}

func nextNonEmpty(order []string, queues map[string][]models.Slot, start int) (int, bool) {
	for i := 0; i < len(order); i++ {
		idx := (start + i) % len(order)
		if len(queues[order[idx]]) > 0 {
			return idx, true
		}
	}
	return 0, false
}

// assignByTopic clusters entries of one theme onto adjacent targets.
func assignByTopic(targets []*target, entries []models.Slot) {
	sorted := make([]models.Slot, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ThemeKey() < sorted[j].ThemeKey()
	})
	for i := 0; i < len(sorted) && i < len(targets); i++ {
		entry := sorted[i]
		targets[i].entry = &entry
	}
}

// place puts entry's content onto the target position.
func place(entry, base models.Slot) models.Slot {
	moved := entry
	moved.ID = base.ID
	moved.Date = base.Date
	moved.Position = base.Position
	moved.CreatedAt = base.CreatedAt
	moved.UpdatedAt = now()
	moved.Status = models.SlotStatusTopic
	return moved
}
