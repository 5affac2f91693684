package expense

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for the expense module.
type Repository interface {
	Insert(ctx context.Context, e *Expense) error
	FindByOwner(ctx context.Context, ownerID string) ([]Expense, error)
	FindFiltered(ctx context.Context, ownerID string, f Filter) ([]Expense, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert persists a new expense record.
func (r *PGRepository) Insert(ctx context.Context, e *Expense) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, user_id, amount, category, description, date, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Amount, e.Category, e.Description, e.Date, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// FindByOwner returns all records for the owner, most recent date first.
func (r *PGRepository) FindByOwner(ctx context.Context, ownerID string) ([]Expense, error) {
	return r.FindFiltered(ctx, ownerID, Filter{})
}

// FindFiltered returns the owner's records constrained by the filter,
// most recent date first.
func (r *PGRepository) FindFiltered(ctx context.Context, ownerID string, f Filter) ([]Expense, error) {
	query, args := filterQuery(ownerID, f)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// filterQuery builds the listing query. The category clause applies on
// its own; the date clause requires both bounds and is inclusive.
func filterQuery(ownerID string, f Filter) (string, []any) {
	query := `SELECT id, user_id, amount, category, description, date, created_at
              FROM expenses WHERE user_id = $1`
	args := []any{ownerID}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.dateBounded() {
		args = append(args, f.StartDate, f.EndDate)
		query += fmt.Sprintf(" AND date >= $%d AND date <= $%d", len(args)-1, len(args))
	}

	query += " ORDER BY date DESC"
	return query, args
}

var _ Repository = (*PGRepository)(nil)
