package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promo-platform/backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts the user and its target profile in one transaction.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, surname, email, password, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Name, u.Surname, u.Email, u.Password, u.AvatarURL).Scan(&u.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_targets (user_id, age, country) VALUES ($1, $2, $3)
	`, u.ID, u.Other.Age, u.Other.Country)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.surname, u.email, u.password, u.avatar_url, t.age, t.country
		FROM users u
		LEFT JOIN user_targets t ON t.user_id = u.id
		WHERE u.id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.AvatarURL,
		&u.Other.Age, &u.Other.Country)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.surname, u.email, u.password, u.avatar_url, t.age, t.country
		FROM users u
		LEFT JOIN user_targets t ON t.user_id = u.id
		WHERE u.email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.AvatarURL,
		&u.Other.Age, &u.Other.Country)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ProfilePatch carries the updatable profile fields. Nil means untouched;
// Password must already be hashed by the caller.
type ProfilePatch struct {
	Name      *string
	Surname   *string
	AvatarURL *string
	Password  *string
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p ProfilePatch) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET
			name = COALESCE($1, name),
			surname = COALESCE($2, surname),
			avatar_url = COALESCE($3, avatar_url),
			password = COALESCE($4, password)
		WHERE id = $5
	`, p.Name, p.Surname, p.AvatarURL, p.Password, id)
	return err
}
