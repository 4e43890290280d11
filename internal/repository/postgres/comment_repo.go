package postgres

import (
	"context"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CommentRepo implements CommentRepository using PostgreSQL.
type CommentRepo struct{ db *DB }

// NewCommentRepo constructs a comment repository.
func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

// ListByOffer returns comments of an offer, oldest first.
func (r *CommentRepo) ListByOffer(ctx context.Context, offerID int) (model.Comments, error) {
	const q = `
SELECT c.id, c.rating, c.comment, c.created_at, u.name, u.avatar_url, u.is_pro
FROM comments c JOIN users u ON u.id = c.user_id
WHERE c.offer_id=$1
ORDER BY c.created_at, c.id`
	rows, err := r.db.Pool.Query(ctx, q, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := model.Comments{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Rating, &c.Comment, &c.Date, &c.User.Name, &c.User.AvatarURL, &c.User.IsPro); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a comment. A missing offer or user yields ErrNotFound.
func (r *CommentRepo) Create(ctx context.Context, offerID int, userID uuid.UUID, p model.CommentPost) (model.Comment, error) {
	const q = `
WITH ins AS (
  INSERT INTO comments (offer_id, user_id, rating, comment)
  VALUES ($1, $2, $3, $4)
  RETURNING id, user_id, rating, comment, created_at
)
SELECT ins.id, ins.rating, ins.comment, ins.created_at, u.name, u.avatar_url, u.is_pro
FROM ins JOIN users u ON u.id = ins.user_id`
	var c model.Comment
	err := r.db.Pool.QueryRow(ctx, q, offerID, userID, p.Rating, p.Comment).
		Scan(&c.ID, &c.Rating, &c.Comment, &c.Date, &c.User.Name, &c.User.AvatarURL, &c.User.IsPro)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Comment{}, errs.ErrNotFound
		}
		return model.Comment{}, err
	}
	return c, nil
}
