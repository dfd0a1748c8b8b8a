package dayoff

import (
	"fmt"

	"timebank/models"
)

// Allocation is one step of an allocation plan: consume HoursUsed hours from
// the overtime entry identified by EntryID.
type Allocation struct {
	EntryID   uint `json:"entry_id"`
	HoursUsed int  `json:"hours_used"`
}

// Allocate selects which overtime entries fund a day off costing
// requiredHours, consuming the pool front to back.
//
// The pool must already be filtered to one user's unused entries and sorted
// by date ascending; input order is trusted as the consumption priority, so
// the oldest overtime is always spent first. Allocate never mutates the pool:
// it returns a descriptive plan and the caller applies the balance updates
// once it knows the whole plan will be committed.
//
// The returned plan preserves pool order, sums exactly to requiredHours, and
// fully drains every selected entry except possibly the last. If the pool
// cannot cover requiredHours, Allocate returns an InsufficientHoursError and
// no plan.
func Allocate(pool []models.OvertimeEntry, requiredHours int) ([]Allocation, error) {
	if requiredHours <= 0 {
		return nil, fmt.Errorf("allocate: required hours must be positive, got %d", requiredHours)
	}

	total := 0
	var plan []Allocation
	for i := range pool {
		available := pool[i].RemainingHours
		if available <= 0 {
			// Drained entries are filtered upstream; tolerate them anyway.
			continue
		}
		if total+available >= requiredHours {
			plan = append(plan, Allocation{EntryID: pool[i].ID, HoursUsed: requiredHours - total})
			total = requiredHours
			break
		}
		plan = append(plan, Allocation{EntryID: pool[i].ID, HoursUsed: available})
		total += available
	}

	if total < requiredHours {
		return nil, &InsufficientHoursError{RequiredHours: requiredHours, AvailableHours: total}
	}
	return plan, nil
}
