package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promo-platform/backend/internal/models"
)

type PromoRepo struct {
	pool *pgxpool.Pool
}

func NewPromoRepo(pool *pgxpool.Pool) *PromoRepo {
	return &PromoRepo{pool: pool}
}

const promoColumns = `
	id, company_id, description, image_url, age_from, age_until, country,
	active_from, active_until, max_count, mode, active, like_count,
	used_count, promo_common, created_at`

func scanPromo(row pgx.Row, p *models.Promo) error {
	return row.Scan(&p.ID, &p.CompanyID, &p.Description, &p.ImageURL,
		&p.AgeFrom, &p.AgeUntil, &p.Country,
		&p.ActiveFrom, &p.ActiveUntil, &p.MaxCount, &p.Mode, &p.Active,
		&p.LikeCount, &p.UsedCount, &p.PromoCommon, &p.CreatedAt)
}

// Create inserts the promo row, its category rows and, for UNIQUE mode, the
// code pool, in one transaction. Categories are created fresh per promo.
func (r *PromoRepo) Create(ctx context.Context, p *models.Promo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO promos (company_id, description, image_url, age_from, age_until,
			country, active_from, active_until, max_count, mode, promo_common)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, active, like_count, used_count, created_at
	`, p.CompanyID, p.Description, p.ImageURL, p.AgeFrom, p.AgeUntil,
		p.Country, p.ActiveFrom, p.ActiveUntil, p.MaxCount, p.Mode, p.PromoCommon,
	).Scan(&p.ID, &p.Active, &p.LikeCount, &p.UsedCount, &p.CreatedAt)
	if err != nil {
		return err
	}

	for _, name := range p.Categories {
		if _, err := tx.Exec(ctx, `
			INSERT INTO categories (promo_id, name) VALUES ($1, $2)
		`, p.ID, name); err != nil {
			return err
		}
	}

	if p.Mode == models.PromoModeUnique {
		for _, code := range p.PromoUnique {
			if _, err := tx.Exec(ctx, `
				INSERT INTO unique_codes (promo_id, code) VALUES ($1, $2)
			`, p.ID, code); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PromoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Promo, error) {
	var p models.Promo
	row := r.pool.QueryRow(ctx, `SELECT`+promoColumns+` FROM promos WHERE id = $1`, id)
	if err := scanPromo(row, &p); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, []*models.Promo{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

type PromoFilter struct {
	Countries []string
	SortBy    string // active_from / active_until, descending
	Limit     int
	Offset    int
}

// ListForCompany returns one page of the company's promos plus the total
// match count before pagination.
func (r *PromoRepo) ListForCompany(ctx context.Context, companyID uuid.UUID, f PromoFilter) (int, []*models.Promo, error) {
	where := "company_id = $1"
	args := []any{companyID}
	if len(f.Countries) > 0 {
		where += fmt.Sprintf(" AND country = ANY($%d)", len(args)+1)
		args = append(args, f.Countries)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM promos WHERE `+where, args...).Scan(&total); err != nil {
		return 0, nil, err
	}

	order := "created_at DESC"
	switch f.SortBy {
	case "active_from":
		order = "active_from DESC NULLS LAST"
	case "active_until":
		order = "active_until DESC NULLS LAST"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT%s FROM promos WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		promoColumns, where, order, len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	promos, err := r.queryPromos(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}
	return total, promos, nil
}

type FeedFilter struct {
	Age      *int
	Country  *string
	Category *string
	Active   *bool
	Limit    int
	Offset   int
}

// ListFeed returns promos whose targeting matches the user profile.
// Untargeted fields match everyone.
func (r *PromoRepo) ListFeed(ctx context.Context, f FeedFilter) (int, []*models.Promo, error) {
	where := "TRUE"
	args := []any{}

	if f.Age != nil {
		where += fmt.Sprintf(" AND (age_from IS NULL OR age_from <= $%d)", len(args)+1)
		args = append(args, *f.Age)
		where += fmt.Sprintf(" AND (age_until IS NULL OR age_until >= $%d)", len(args)+1)
		args = append(args, *f.Age)
	}
	if f.Country != nil {
		where += fmt.Sprintf(" AND (country IS NULL OR country = $%d)", len(args)+1)
		args = append(args, *f.Country)
	}
	if f.Category != nil {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM categories c WHERE c.promo_id = promos.id AND lower(c.name) = lower($%d))", len(args)+1)
		args = append(args, *f.Category)
	}
	if f.Active != nil {
		where += fmt.Sprintf(" AND active = $%d", len(args)+1)
		args = append(args, *f.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM promos WHERE `+where, args...).Scan(&total); err != nil {
		return 0, nil, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT%s FROM promos WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		promoColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	promos, err := r.queryPromos(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}
	return total, promos, nil
}

func (r *PromoRepo) queryPromos(ctx context.Context, query string, args ...any) ([]*models.Promo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*models.Promo
	for rows.Next() {
		var p models.Promo
		if err := scanPromo(rows, &p); err != nil {
			return nil, err
		}
		promos = append(promos, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, promos); err != nil {
		return nil, err
	}
	return promos, nil
}

// loadRelations materialises categories and unique codes for the given
// promos with two batch queries. No lazy loading: a promo returned from
// this repo is complete.
func (r *PromoRepo) loadRelations(ctx context.Context, promos []*models.Promo) error {
	if len(promos) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Promo, len(promos))
	ids := make([]uuid.UUID, 0, len(promos))
	for _, p := range promos {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT promo_id, name FROM categories WHERE promo_id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var promoID uuid.UUID
		var name string
		if err := rows.Scan(&promoID, &name); err != nil {
			return err
		}
		byID[promoID].Categories = append(byID[promoID].Categories, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	codeRows, err := r.pool.Query(ctx, `
		SELECT promo_id, code FROM unique_codes WHERE promo_id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer codeRows.Close()
	for codeRows.Next() {
		var promoID uuid.UUID
		var code string
		if err := codeRows.Scan(&promoID, &code); err != nil {
			return err
		}
		byID[promoID].PromoUnique = append(byID[promoID].PromoUnique, code)
	}
	return codeRows.Err()
}

// Update persists a patched promo. When replaceCategories is set the whole
// category set is swapped for promo.Categories.
func (r *PromoRepo) Update(ctx context.Context, p *models.Promo, replaceCategories bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE promos SET description = $1, image_url = $2, age_from = $3,
			age_until = $4, country = $5, active_from = $6, active_until = $7,
			max_count = $8, active = $9
		WHERE id = $10
	`, p.Description, p.ImageURL, p.AgeFrom, p.AgeUntil, p.Country,
		p.ActiveFrom, p.ActiveUntil, p.MaxCount, p.Active, p.ID)
	if err != nil {
		return err
	}

	if replaceCategories {
		if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE promo_id = $1`, p.ID); err != nil {
			return err
		}
		for _, name := range p.Categories {
			if _, err := tx.Exec(ctx, `
				INSERT INTO categories (promo_id, name) VALUES ($1, $2)
			`, p.ID, name); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// GetUserView joins the company name, the live comment count and the
// caller's engagement flags onto one promo.
func (r *PromoRepo) GetUserView(ctx context.Context, userID, promoID uuid.UUID) (*models.PromoUserView, error) {
	var v models.PromoUserView
	var activated, liked *bool
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.company_id, c.name, p.description, p.image_url, p.active, p.like_count,
			(SELECT count(*) FROM comments WHERE promo_id = p.id),
			up.activated, up.liked
		FROM promos p
		JOIN companies c ON c.id = p.company_id
		LEFT JOIN user_promos up ON up.promo_id = p.id AND up.user_id = $1
		WHERE p.id = $2
	`, userID, promoID).Scan(&v.PromoID, &v.CompanyID, &v.CompanyName,
		&v.Description, &v.ImageURL, &v.Active, &v.LikeCount,
		&v.CommentCount, &activated, &liked)
	if err != nil {
		return nil, err
	}
	if activated != nil {
		v.IsActivatedByUser = *activated
	}
	if liked != nil {
		v.IsLikedByUser = *liked
	}
	return &v, nil
}
