package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promo-platform/backend/internal/models"
)

var (
	// ErrAlreadyActivated: the user has redeemed this promo before.
	ErrAlreadyActivated = errors.New("promo already activated by user")
	// ErrExhausted: activation limit reached or the unique pool is empty.
	ErrExhausted = errors.New("promo activation limit reached")
	// ErrInactive: promo is switched off or outside its activity window.
	ErrInactive = errors.New("promo is not active")
)

type EngagementRepo struct {
	pool *pgxpool.Pool
}

func NewEngagementRepo(pool *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{pool: pool}
}

func promoExists(ctx context.Context, tx pgx.Tx, promoID uuid.UUID) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM promos WHERE id = $1)`, promoID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}
	return nil
}

// Like flips the engagement row to liked and bumps like_count, all in one
// transaction. The upsert changes a row only when liked was false, so the
// counter cannot drift under concurrent repeats. Returns pgx.ErrNoRows when
// the promo does not exist.
func (r *EngagementRepo) Like(ctx context.Context, userID, promoID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := promoExists(ctx, tx, promoID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO user_promos (user_id, promo_id, liked) VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, promo_id) DO UPDATE SET liked = TRUE
		WHERE user_promos.liked = FALSE
	`, userID, promoID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE promos SET like_count = like_count + 1 WHERE id = $1
		`, promoID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Unlike is the symmetric decrement. A missing row or an un-liked row is a
// silent no-op.
func (r *EngagementRepo) Unlike(ctx context.Context, userID, promoID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := promoExists(ctx, tx, promoID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE user_promos SET liked = FALSE
		WHERE user_id = $1 AND promo_id = $2 AND liked = TRUE
	`, userID, promoID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE promos SET like_count = like_count - 1 WHERE id = $1
		`, promoID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Activate redeems the promo for the user and returns the code. The promo
// row is locked for the duration so used_count stays consistent with the
// pool. userCountry, when known, is counted in the countries table.
func (r *EngagementRepo) Activate(ctx context.Context, userID, promoID uuid.UUID, userCountry *string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var p models.Promo
	err = tx.QueryRow(ctx, `
		SELECT id, mode, active, active_from, active_until, max_count, used_count, promo_common
		FROM promos WHERE id = $1 FOR UPDATE
	`, promoID).Scan(&p.ID, &p.Mode, &p.Active, &p.ActiveFrom, &p.ActiveUntil,
		&p.MaxCount, &p.UsedCount, &p.PromoCommon)
	if err != nil {
		return "", err
	}

	if !p.Active {
		return "", ErrInactive
	}
	var inWindow bool
	if err := tx.QueryRow(ctx, `
		SELECT ($1::date IS NULL OR $1::date <= now()::date)
		   AND ($2::date IS NULL OR $2::date >= now()::date)
	`, p.ActiveFrom, p.ActiveUntil).Scan(&inWindow); err != nil {
		return "", err
	}
	if !inWindow {
		return "", ErrInactive
	}
	if p.UsedCount >= p.MaxCount {
		return "", ErrExhausted
	}

	var alreadyActivated bool
	err = tx.QueryRow(ctx, `
		SELECT activated FROM user_promos WHERE user_id = $1 AND promo_id = $2 FOR UPDATE
	`, userID, promoID).Scan(&alreadyActivated)
	if err != nil && err != pgx.ErrNoRows {
		return "", err
	}
	if alreadyActivated {
		return "", ErrAlreadyActivated
	}

	var code string
	if p.Mode == models.PromoModeUnique {
		err = tx.QueryRow(ctx, `
			UPDATE unique_codes SET is_active = FALSE
			WHERE id = (
				SELECT id FROM unique_codes
				WHERE promo_id = $1 AND is_active
				ORDER BY id
				LIMIT 1
				FOR UPDATE SKIP LOCKED
			)
			RETURNING code
		`, promoID).Scan(&code)
		if err == pgx.ErrNoRows {
			return "", ErrExhausted
		}
		if err != nil {
			return "", err
		}
	} else {
		code = *p.PromoCommon
	}

	if _, err := tx.Exec(ctx, `
		UPDATE promos SET used_count = used_count + 1 WHERE id = $1
	`, promoID); err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_promos (user_id, promo_id, activated) VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, promo_id) DO UPDATE SET activated = TRUE
	`, userID, promoID); err != nil {
		return "", err
	}

	if userCountry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO countries (name, activation) VALUES ($1, 1)
			ON CONFLICT (name) DO UPDATE SET activation = countries.activation + 1
		`, *userCountry); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return code, nil
}
