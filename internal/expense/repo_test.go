package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFilterQueryOwnerOnly(t *testing.T) {
	query, args := filterQuery("owner-1", Filter{})

	assert.Contains(t, query, "user_id = $1")
	assert.NotContains(t, query, "category =")
	assert.NotContains(t, query, "date >=")
	assert.Contains(t, query, "ORDER BY date DESC")
	assert.Equal(t, []any{"owner-1"}, args)
}

func TestFilterQueryCategory(t *testing.T) {
	query, args := filterQuery("owner-1", Filter{Category: "food"})

	assert.Contains(t, query, "category = $2")
	assert.NotContains(t, query, "date >=")
	assert.Equal(t, []any{"owner-1", "food"}, args)
}

func TestFilterQueryDateRange(t *testing.T) {
	start, end := date("2024-01-01"), date("2024-01-31")
	query, args := filterQuery("owner-1", Filter{StartDate: start, EndDate: end})

	assert.Contains(t, query, "date >= $2 AND date <= $3")
	assert.Equal(t, []any{"owner-1", start, end}, args)
}

func TestFilterQuerySingleBoundIsIgnored(t *testing.T) {
	// The range only applies with both bounds present; a lone bound
	// leaves the listing unfiltered by date.
	withStart, startArgs := filterQuery("owner-1", Filter{StartDate: date("2024-01-01")})
	withEnd, endArgs := filterQuery("owner-1", Filter{EndDate: date("2024-01-31")})
	plain, plainArgs := filterQuery("owner-1", Filter{})

	assert.Equal(t, plain, withStart)
	assert.Equal(t, plain, withEnd)
	assert.Equal(t, plainArgs, startArgs)
	assert.Equal(t, plainArgs, endArgs)
}

func TestFilterQueryCategoryAndDateRange(t *testing.T) {
	start, end := date("2024-01-01"), date("2024-01-31")
	query, args := filterQuery("owner-1", Filter{Category: "food", StartDate: start, EndDate: end})

	assert.Contains(t, query, "category = $2")
	assert.Contains(t, query, "date >= $3 AND date <= $4")
	assert.Equal(t, []any{"owner-1", "food", start, end}, args)
}
