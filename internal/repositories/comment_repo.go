package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promo-platform/backend/internal/models"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) PromoExists(ctx context.Context, promoID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM promos WHERE id = $1)`, promoID).Scan(&exists)
	return exists, err
}

// Create inserts the comment and resolves the author display fields in the
// same round trip.
func (r *CommentRepo) Create(ctx context.Context, userID, promoID uuid.UUID, text string) (*models.Comment, error) {
	var c models.Comment
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO comments (text, author, promo_id) VALUES ($1, $2, $3)
			RETURNING id, text, date, author, promo_id
		)
		SELECT i.id, i.text, i.date, i.author, i.promo_id, u.name, u.surname, u.avatar_url
		FROM inserted i JOIN users u ON u.id = i.author
	`, text, userID, promoID).Scan(&c.ID, &c.Text, &c.Date, &c.AuthorID, &c.PromoID,
		&c.Author.Name, &c.Author.Surname, &c.Author.AvatarURL)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const commentSelect = `
	SELECT c.id, c.text, c.date, c.author, c.promo_id, u.name, u.surname, u.avatar_url
	FROM comments c JOIN users u ON u.id = c.author`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.Text, &c.Date, &c.AuthorID, &c.PromoID,
		&c.Author.Name, &c.Author.Surname, &c.Author.AvatarURL)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListForPromo returns comments newest first.
func (r *CommentRepo) ListForPromo(ctx context.Context, promoID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, commentSelect+`
		WHERE c.promo_id = $1
		ORDER BY c.date DESC
		LIMIT $2 OFFSET $3
	`, promoID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Get resolves a comment by the (promo, comment) pair.
func (r *CommentRepo) Get(ctx context.Context, promoID, commentID uuid.UUID) (*models.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+`
		WHERE c.promo_id = $1 AND c.id = $2
	`, promoID, commentID))
}

func (r *CommentRepo) UpdateText(ctx context.Context, promoID, commentID uuid.UUID, text string) (*models.Comment, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE comments SET text = $1 WHERE promo_id = $2 AND id = $3
	`, text, promoID, commentID)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, promoID, commentID)
}

func (r *CommentRepo) Delete(ctx context.Context, promoID, commentID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE promo_id = $1 AND id = $2
	`, promoID, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
