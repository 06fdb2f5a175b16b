package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promo-platform/backend/internal/models"
)

type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

func (r *CompanyRepo) Create(ctx context.Context, c *models.Company) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO companies (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.Name, c.Email, c.Password).Scan(&c.ID)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password FROM companies WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Password)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) GetByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password FROM companies WHERE email = $1
	`, email).Scan(&c.ID, &c.Name, &c.Email, &c.Password)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
