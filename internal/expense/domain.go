package expense

import "time"

// Expense is a single spending record owned by exactly one user. The
// owner is set at creation from the authenticated caller and never
// reassigned.
type Expense struct {
	ID          string
	UserID      string
	Amount      float64
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Filter narrows a listing. Zero values mean "no constraint". The date
// range is inclusive on both ends and only applies when both bounds are
// set; a single bound is ignored entirely.
type Filter struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
}

// dateBounded reports whether the filter carries a usable date range.
func (f Filter) dateBounded() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}
