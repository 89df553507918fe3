package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// AmbassadorRepository encapsulates ambassador persistence.
type AmbassadorRepository interface {
	Create(ctx context.Context, amb *domain.Ambassador) error
	Update(ctx context.Context, amb *domain.Ambassador) error
	GetByID(ctx context.Context, id string) (*domain.Ambassador, error)
	List(ctx context.Context) ([]domain.Ambassador, error)
}

type ambassadorRepository struct {
	pool *pgxpool.Pool
}

// NewAmbassadorRepository instantiates repository.
func NewAmbassadorRepository(pool *pgxpool.Pool) AmbassadorRepository {
	return &ambassadorRepository{pool: pool}
}

func (r *ambassadorRepository) Create(ctx context.Context, amb *domain.Ambassador) error {
	const query = `
        INSERT INTO ambassadors (name, email, phone, commission_rate, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		amb.Name,
		amb.Email,
		amb.Phone,
		amb.CommissionRate,
		amb.Active,
	).Scan(&amb.ID, &amb.CreatedAt)
}

func (r *ambassadorRepository) Update(ctx context.Context, amb *domain.Ambassador) error {
	const query = `
        UPDATE ambassadors SET name=$1, email=$2, phone=$3, commission_rate=$4, active=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		amb.Name,
		amb.Email,
		amb.Phone,
		amb.CommissionRate,
		amb.Active,
		amb.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ambassadorRepository) GetByID(ctx context.Context, id string) (*domain.Ambassador, error) {
	const query = `
        SELECT id, name, email, phone, commission_rate, active, created_at
        FROM ambassadors WHERE id=$1`

	var amb domain.Ambassador
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&amb.ID,
		&amb.Name,
		&amb.Email,
		&amb.Phone,
		&amb.CommissionRate,
		&amb.Active,
		&amb.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &amb, nil
}

// List returns ambassadors ordered by name, matching the admin screen.
func (r *ambassadorRepository) List(ctx context.Context) ([]domain.Ambassador, error) {
	const query = `
        SELECT id, name, email, phone, commission_rate, active, created_at
        FROM ambassadors ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ambassador
	for rows.Next() {
		var amb domain.Ambassador
		if err := rows.Scan(
			&amb.ID,
			&amb.Name,
			&amb.Email,
			&amb.Phone,
			&amb.CommissionRate,
			&amb.Active,
			&amb.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, amb)
	}
	return result, rows.Err()
}
