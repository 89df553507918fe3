package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// TicketTypeRepository encapsulates ticket type persistence.
type TicketTypeRepository interface {
	Create(ctx context.Context, tt *domain.TicketType) error
	GetByID(ctx context.Context, id string) (*domain.TicketType, error)
	List(ctx context.Context) ([]domain.TicketType, error)
}

type ticketTypeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketTypeRepository instantiates repository.
func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &ticketTypeRepository{pool: pool}
}

func (r *ticketTypeRepository) Create(ctx context.Context, tt *domain.TicketType) error {
	const query = `
        INSERT INTO ticket_types (name, description, price, people_per_ticket, total_stock)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		tt.Name,
		tt.Description,
		tt.Price,
		tt.PeoplePerTicket,
		tt.TotalStock,
	).Scan(&tt.ID, &tt.CreatedAt)
}

func (r *ticketTypeRepository) GetByID(ctx context.Context, id string) (*domain.TicketType, error) {
	const query = `
        SELECT id, name, description, price, people_per_ticket, total_stock, created_at
        FROM ticket_types WHERE id=$1`

	var tt domain.TicketType
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tt.ID,
		&tt.Name,
		&tt.Description,
		&tt.Price,
		&tt.PeoplePerTicket,
		&tt.TotalStock,
		&tt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tt, nil
}

// List returns all ticket types ordered by price ascending, matching the
// sales terminal display order.
func (r *ticketTypeRepository) List(ctx context.Context) ([]domain.TicketType, error) {
	const query = `
        SELECT id, name, description, price, people_per_ticket, total_stock, created_at
        FROM ticket_types ORDER BY price ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketTypes(rows)
}

func scanTicketTypes(rows pgx.Rows) ([]domain.TicketType, error) {
	var result []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(
			&tt.ID,
			&tt.Name,
			&tt.Description,
			&tt.Price,
			&tt.PeoplePerTicket,
			&tt.TotalStock,
			&tt.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tt)
	}
	return result, rows.Err()
}
