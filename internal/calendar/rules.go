package calendar

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

const (
	// WeightingTolerance is the share of all filled slots a subject area may deviate
	// from its target before a violation is reported.
	WeightingTolerance = 0.10
	// MaxThemeGapDays is the largest gap between two days of one theme that still
	// counts as contiguous in by-topic planning.
	MaxThemeGapDays = 7
)

// CheckRuleViolations evaluates the current assignment against the plan's weighting and
// distribution mode. Violations are advisory.
func CheckRuleViolations(slotsByDate map[string][]models.Slot, meta *models.PlanMetadata) []models.Violation {
	violations := []models.Violation{}
	if meta == nil || len(slotsByDate) == 0 {
		return violations
	}

	violations = append(violations, checkWeighting(slotsByDate, meta.RechtsgebieteGewichtung)...)

	switch meta.Mode() {
	case models.VerteilungFokussiert:
		if v, ok := checkFocused(slotsByDate); ok {
			violations = append(violations, v)
		}
	case models.VerteilungThemenweise:
		if v, ok := checkByTopic(slotsByDate); ok {
			violations = append(violations, v)
		}
	}
	return violations
}

func checkWeighting(slotsByDate map[string][]models.Slot, weights map[string]float64) []models.Violation {
	if len(weights) == 0 {
		return nil
	}
	total := 0
	counts := make(map[string]int)
	for _, slots := range slotsByDate {
		for _, slot := range slots {
			if !slot.IsFilled() {
				continue
			}
			total++
			counts[slot.Rechtsgebiet]++
		}
	}
	if total == 0 {
		return nil
	}

	areas := make([]string, 0, len(weights))
	for area := range weights {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	var violations []models.Violation
	for _, area := range areas {
		percent := weights[area]
		actual := counts[area]
		target := int(math.Round(float64(total) * percent / 100))
		deviation := actual - target
		if math.Abs(float64(deviation))/float64(total) <= WeightingTolerance {
			continue
		}
		actualPercent := int(math.Round(float64(actual) / float64(total) * 100))
		severity := models.SeverityInfo
		direction := "unter"
		if deviation > 0 {
			severity = models.SeverityWarning
			direction = "über"
		}
		violations = append(violations, models.Violation{
			Type:         models.ViolationGewichtung,
			Severity:     severity,
			Rechtsgebiet: area,
			Actual:       actual,
			Target:       target,
			Deviation:    deviation,
			Message: fmt.Sprintf("%s liegt mit %d%% %s der Zielgewichtung von %s%%",
				area, actualPercent, direction, formatPercent(percent)),
		})
	}
	return violations
}

func checkFocused(slotsByDate map[string][]models.Slot) (models.Violation, bool) {
	var dates []string
	for _, date := range SortedDates(slotsByDate) {
		areas := make(map[string]struct{})
		for _, slot := range slotsByDate[date] {
			if !slot.IsFilled() || slot.Rechtsgebiet == "" {
				continue
			}
			areas[slot.Rechtsgebiet] = struct{}{}
		}
		if len(areas) > 1 {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return models.Violation{}, false
	}
	return models.Violation{
		Type:     models.ViolationVerteilungsmodus,
		Severity: models.SeverityWarning,
		Dates:    dates,
		Message: fmt.Sprintf("Fokussierter Modus: %d Tag(e) mit mehreren Rechtsgebieten (%s)",
			len(dates), strings.Join(dates, ", ")),
	}, true
}

func checkByTopic(slotsByDate map[string][]models.Slot) (models.Violation, bool) {
	themeDates := make(map[string]map[string]struct{})
	for date, slots := range slotsByDate {
		for _, slot := range slots {
			if !slot.IsFilled() {
				continue
			}
			key := slot.ThemeKey()
			if key == "" {
				continue
			}
			if themeDates[key] == nil {
				themeDates[key] = make(map[string]struct{})
			}
			themeDates[key][date] = struct{}{}
		}
	}

	fragmented := 0
	for _, dateSet := range themeDates {
		if len(dateSet) < 2 {
			continue
		}
		if isFragmented(SortedDates(dateSet)) {
			fragmented++
		}
	}
	if fragmented == 0 {
		return models.Violation{}, false
	}
	return models.Violation{
		Type:             models.ViolationVerteilungsmodus,
		Severity:         models.SeverityInfo,
		FragmentedThemes: fragmented,
		Message:          fmt.Sprintf("Themenweiser Modus: %d Thema/Themen mit Lücken von mehr als %d Tagen", fragmented, MaxThemeGapDays),
	}, true
}

func isFragmented(dates []string) bool {
	for i := 1; i < len(dates); i++ {
		gap, ok := daysBetween(dates[i-1], dates[i])
		if ok && gap > MaxThemeGapDays {
			return true
		}
	}
	return false
}

func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

func formatPercent(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
