package models

// TimeWindow is the wall-clock window of a slot position.
type TimeWindow struct {
	StartHour int    `json:"startHour"`
	Duration  int    `json:"duration"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Complete reports whether every field of the window is set.
func (w *TimeWindow) Complete() bool {
	return w != nil && w.Duration > 0 && w.StartTime != "" && w.EndTime != ""
}

// Session is the display join of a slot and its content. It is never persisted.
type Session struct {
	ID                string    `json:"id"`
	ContentID         string    `json:"contentId"`
	Date              string    `json:"date"`
	Position          int       `json:"position"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Rechtsgebiet      string    `json:"rechtsgebiet"`
	Unterrechtsgebiet string    `json:"unterrechtsgebiet"`
	Kapitel           *string   `json:"kapitel,omitempty"`
	BlockType         BlockType `json:"blockType"`
	IsLocked          bool      `json:"isLocked"`
	IsBlocked         bool      `json:"isBlocked"`
	Completed         bool      `json:"completed"`
	GroupID           *string   `json:"groupId,omitempty"`
	GroupSize         int       `json:"groupSize,omitempty"`
	GroupIndex        int       `json:"groupIndex,omitempty"`
	Tasks             []Task    `json:"tasks"`
	TimeWindow
}

// DaySessions pairs a date with its ordered sessions.
type DaySessions struct {
	Date     string    `json:"date"`
	Sessions []Session `json:"sessions"`
}
