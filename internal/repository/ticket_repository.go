package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// AdmittedTicket is the payload returned when a scan wins the
// valid -> used transition.
type AdmittedTicket struct {
	TicketID        string
	TicketTypeName  string
	Description     string
	PeoplePerTicket int
	ScannedAt       time.Time
}

// TypeCounts carries per-type sold/used counters for the dashboard.
type TypeCounts struct {
	Sold int
	Used int
}

// TicketRepository encapsulates ticket persistence. ClaimValid and Revoke
// are single conditional updates: the check and the state change are one
// indivisible statement, so two racing scans of the same ticket resolve
// to exactly one winner.
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ClaimValid(ctx context.Context, id string) (*AdmittedTicket, error)
	Revoke(ctx context.Context, id string) error
	StatusCountsByType(ctx context.Context) (map[string]TypeCounts, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, ticket_type_id, status, scanned_at, created_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TicketTypeID,
		&ticket.Status,
		&ticket.ScannedAt,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ClaimValid attempts the valid -> used transition. It returns
// pgx.ErrNoRows when the ticket is absent or not in the valid state; the
// caller inspects the row separately to classify the denial.
func (r *ticketRepository) ClaimValid(ctx context.Context, id string) (*AdmittedTicket, error) {
	const query = `
        UPDATE tickets t
        SET status='used', scanned_at=NOW()
        FROM ticket_types tt
        WHERE t.id=$1 AND t.status='valid' AND tt.id=t.ticket_type_id
        RETURNING t.id, tt.name, tt.description, tt.people_per_ticket, t.scanned_at`

	var admitted AdmittedTicket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&admitted.TicketID,
		&admitted.TicketTypeName,
		&admitted.Description,
		&admitted.PeoplePerTicket,
		&admitted.ScannedAt,
	); err != nil {
		return nil, err
	}
	return &admitted, nil
}

// Revoke transitions valid -> revoked. Tickets already used or revoked
// are left untouched and reported via domain.ErrNotRevocable.
func (r *ticketRepository) Revoke(ctx context.Context, id string) error {
	const query = `UPDATE tickets SET status='revoked' WHERE id=$1 AND status='valid'`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return domain.ErrNotRevocable
	}
	return nil
}

func (r *ticketRepository) StatusCountsByType(ctx context.Context) (map[string]TypeCounts, error) {
	const query = `
        SELECT ticket_type_id,
               COUNT(*),
               COUNT(*) FILTER (WHERE status='used')
        FROM tickets GROUP BY ticket_type_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]TypeCounts)
	for rows.Next() {
		var typeID string
		var tc TypeCounts
		if err := rows.Scan(&typeID, &tc.Sold, &tc.Used); err != nil {
			return nil, err
		}
		counts[typeID] = tc
	}
	return counts, rows.Err()
}
