package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateInput carries the validated fields for a new expense.
type CreateInput struct {
	Amount      float64
	Category    string
	Description string
	Date        time.Time
}

// Service provides owner-scoped expense operations. Every call takes
// the caller identity; records belonging to other users are never
// readable or writable through it.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new expense owned by ownerID with a freshly minted
// id. The write is not idempotent; a client retry after a dropped
// response inserts a second record.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*Expense, error) {
	e := &Expense{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all of the owner's expenses, most recent date first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Expense, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Filter returns the owner's expenses constrained by f.
func (s *Service) Filter(ctx context.Context, ownerID string, f Filter) ([]Expense, error) {
	return s.repo.FindFiltered(ctx, ownerID, f)
}
