package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// SaleInput carries the parameters of one sale. Validation of shapes
// (email syntax, payment method) happens in the service layer; referential
// checks happen here, inside the transaction.
type SaleInput struct {
	TicketTypeID  string
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	AmbassadorID  *string
	PaymentMethod domain.PaymentMethod
	Notes         *string
}

// SaleRepository owns the transactional sale path and the reporting
// query. Stock accounting and ticket creation must not be split across
// calls: the capacity check and the insert happen under a row lock on the
// ticket type, so concurrent sales of the last unit cannot both pass.
type SaleRepository interface {
	CreateCompleteSale(ctx context.Context, input SaleInput) (*domain.SaleReceipt, error)
	GenerateTicket(ctx context.Context, ticketTypeID string) (*domain.Ticket, error)
	Report(ctx context.Context) ([]domain.SaleRecord, error)
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository instantiates repository.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

func (r *saleRepository) CreateCompleteSale(ctx context.Context, input SaleInput) (*domain.SaleReceipt, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ticketType, err := lockTicketType(ctx, tx, input.TicketTypeID)
	if err != nil {
		return nil, err
	}

	if err := checkStock(ctx, tx, ticketType); err != nil {
		return nil, err
	}

	customer, err := upsertCustomer(ctx, tx, input.CustomerName, input.CustomerEmail, input.CustomerPhone)
	if err != nil {
		return nil, err
	}

	commission := decimal.Zero
	if input.AmbassadorID != nil {
		ambassador, err := fetchAmbassador(ctx, tx, *input.AmbassadorID)
		if err != nil {
			return nil, err
		}
		if !ambassador.Active {
			return nil, domain.ErrAmbassadorInactive
		}
		commission = domain.CommissionAmount(ticketType.Price, ambassador.CommissionRate)
	}

	ticket, err := insertTicket(ctx, tx, ticketType.ID)
	if err != nil {
		return nil, err
	}

	sale := domain.Sale{
		TicketID:         ticket.ID,
		CustomerID:       customer.ID,
		AmbassadorID:     input.AmbassadorID,
		PaymentMethod:    input.PaymentMethod,
		SalePrice:        ticketType.Price,
		CommissionAmount: commission,
		Notes:            input.Notes,
	}
	const insertSale = `
        INSERT INTO sales (ticket_id, customer_id, ambassador_id, payment_method, sale_price, commission_amount, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertSale,
		sale.TicketID,
		sale.CustomerID,
		sale.AmbassadorID,
		sale.PaymentMethod,
		sale.SalePrice,
		sale.CommissionAmount,
		sale.Notes,
	).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	return &domain.SaleReceipt{
		Sale:       sale,
		Ticket:     *ticket,
		TicketType: *ticketType,
		Customer:   *customer,
	}, nil
}

// GenerateTicket creates a bare valid ticket without a sale record, used
// for comp tickets. It goes through the same lock-and-count path so
// total_stock holds for every ticket ever created.
func (r *saleRepository) GenerateTicket(ctx context.Context, ticketTypeID string) (*domain.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin generate transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ticketType, err := lockTicketType(ctx, tx, ticketTypeID)
	if err != nil {
		return nil, err
	}
	if err := checkStock(ctx, tx, ticketType); err != nil {
		return nil, err
	}

	ticket, err := insertTicket(ctx, tx, ticketType.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit generate: %w", err)
	}
	return ticket, nil
}

func (r *saleRepository) Report(ctx context.Context) ([]domain.SaleRecord, error) {
	const query = `
        SELECT t.id, tt.name, c.name, c.email, c.phone, a.name,
               s.sale_price, s.commission_amount, s.payment_method,
               t.status, t.scanned_at, s.created_at
        FROM sales s
        JOIN tickets t ON t.id = s.ticket_id
        JOIN ticket_types tt ON tt.id = t.ticket_type_id
        JOIN customers c ON c.id = s.customer_id
        LEFT JOIN ambassadors a ON a.id = s.ambassador_id
        ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SaleRecord
	for rows.Next() {
		var rec domain.SaleRecord
		if err := rows.Scan(
			&rec.TicketID,
			&rec.TicketTypeName,
			&rec.CustomerName,
			&rec.CustomerEmail,
			&rec.CustomerPhone,
			&rec.AmbassadorName,
			&rec.SalePrice,
			&rec.CommissionAmount,
			&rec.PaymentMethod,
			&rec.TicketStatus,
			&rec.ScannedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// lockTicketType reads the ticket type under FOR UPDATE so racing sales
// of the same type serialize on the row.
func lockTicketType(ctx context.Context, tx pgx.Tx, id string) (*domain.TicketType, error) {
	const query = `
        SELECT id, name, description, price, people_per_ticket, total_stock, created_at
        FROM ticket_types WHERE id=$1 FOR UPDATE`

	var tt domain.TicketType
	if err := tx.QueryRow(ctx, query, id).Scan(
		&tt.ID,
		&tt.Name,
		&tt.Description,
		&tt.Price,
		&tt.PeoplePerTicket,
		&tt.TotalStock,
		&tt.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &tt, nil
}

func checkStock(ctx context.Context, tx pgx.Tx, tt *domain.TicketType) error {
	var sold int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE ticket_type_id=$1`, tt.ID,
	).Scan(&sold); err != nil {
		return err
	}
	if sold >= tt.TotalStock {
		return domain.ErrInsufficientStock
	}
	return nil
}

func upsertCustomer(ctx context.Context, tx pgx.Tx, name, email string, phone *string) (*domain.Customer, error) {
	// Relies on the unique index on LOWER(email); an existing row is
	// reused and its contact data refreshed.
	const query = `
        INSERT INTO customers (name, email, phone)
        VALUES ($1, $2, $3)
        ON CONFLICT (LOWER(email)) DO UPDATE
            SET name = EXCLUDED.name,
                phone = COALESCE(EXCLUDED.phone, customers.phone)
        RETURNING id, name, email, phone, created_at`

	var customer domain.Customer
	if err := tx.QueryRow(ctx, query, name, email, phone).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	return &customer, nil
}

func fetchAmbassador(ctx context.Context, tx pgx.Tx, id string) (*domain.Ambassador, error) {
	const query = `
        SELECT id, name, email, phone, commission_rate, active, created_at
        FROM ambassadors WHERE id=$1`

	var amb domain.Ambassador
	if err := tx.QueryRow(ctx, query, id).Scan(
		&amb.ID,
		&amb.Name,
		&amb.Email,
		&amb.Phone,
		&amb.CommissionRate,
		&amb.Active,
		&amb.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAmbassadorNotFound
		}
		return nil, err
	}
	return &amb, nil
}

func insertTicket(ctx context.Context, tx pgx.Tx, ticketTypeID string) (*domain.Ticket, error) {
	const query = `
        INSERT INTO tickets (ticket_type_id, status)
        VALUES ($1, 'valid')
        RETURNING id, ticket_type_id, status, scanned_at, created_at`

	var ticket domain.Ticket
	if err := tx.QueryRow(ctx, query, ticketTypeID).Scan(
		&ticket.ID,
		&ticket.TicketTypeID,
		&ticket.Status,
		&ticket.ScannedAt,
		&ticket.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return &ticket, nil
}
