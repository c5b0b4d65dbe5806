package cartrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Upsert(ctx context.Context, userID, bookID, quantity int64) error
	UpdateQuantity(ctx context.Context, userID, bookID, quantity int64) (int64, error)
	Delete(ctx context.Context, userID, bookID int64) error
	List(ctx context.Context, userID int64) ([]model.CartRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// Upsert adds the book to the cart or bumps quantity when the
// (user, book) row already exists.
func (r *repo) Upsert(ctx context.Context, userID, bookID, quantity int64) error {
	const q = `
		INSERT INTO cart (user_id, book_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity`
	_, err := r.db.ExecContext(ctx, q, userID, bookID, quantity)
	return err
}

func (r *repo) UpdateQuantity(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
	const q = `
		UPDATE cart
		SET quantity = $3
		WHERE user_id = $1
		AND book_id = $2`
	res, err := r.db.ExecContext(ctx, q, userID, bookID, quantity)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

func (r *repo) Delete(ctx context.Context, userID, bookID int64) error {
	const q = `
		DELETE FROM cart
		WHERE user_id = $1
		AND book_id = $2`
	_, err := r.db.ExecContext(ctx, q, userID, bookID)
	return err
}

func (r *repo) List(ctx context.Context, userID int64) ([]model.CartRow, error) {
	const q = `
		SELECT c.id, c.book_id, c.quantity,
			b.title, b.price, b.image
		FROM cart c
		JOIN books b ON b.id = c.book_id
		WHERE c.user_id = $1
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CartRow
	for rows.Next() {
		var c model.CartRow
		if err := rows.Scan(&c.ID, &c.BookID, &c.Quantity, &c.Title, &c.Price, &c.Image); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
