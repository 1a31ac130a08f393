package calendar

import (
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// ValidateSwap pre-checks a manual swap of two slots. A yellow result is advisory;
// callers apply the swap whenever Allowed is true.
func ValidateSwap(a, b models.Slot, meta *models.PlanMetadata, today time.Time) models.SwapValidation {
	if today.IsZero() {
		today = now()
	}
	ref := today.Format(DateLayout)
	if a.Date < ref || b.Date < ref {
		return models.SwapValidation{Allowed: false, Status: models.SwapRed, Message: "Vergangene Blöcke können nicht getauscht werden"}
	}
	if a.Completed || b.Completed {
		return models.SwapValidation{Allowed: false, Status: models.SwapRed, Message: "Abgeschlossene Blöcke können nicht getauscht werden"}
	}
	if meta.Mode() == models.VerteilungFokussiert && a.Rechtsgebiet != b.Rechtsgebiet {
		return models.SwapValidation{Allowed: true, Status: models.SwapYellow, Message: "Tausch mischt Rechtsgebiete an einem fokussierten Tag"}
	}
	return models.SwapValidation{Allowed: true, Status: models.SwapGreen, Message: "Tausch möglich"}
}

// SwapSlots exchanges the content of two slots while each keeps its own position and id.
func SwapSlots(a, b models.Slot) (models.Slot, models.Slot) {
	ts := now()
	swappedA := withContentOf(a, b)
	swappedB := withContentOf(b, a)
	swappedA.UpdatedAt = ts
	swappedB.UpdatedAt = ts
	return swappedA, swappedB
}

func withContentOf(position, content models.Slot) models.Slot {
	out := content
	out.ID = position.ID
	out.Date = position.Date
	out.Position = position.Position
	out.CreatedAt = position.CreatedAt
	out.GroupID = nil
	out.GroupSize = 0
	out.GroupIndex = 0
	return out
}
