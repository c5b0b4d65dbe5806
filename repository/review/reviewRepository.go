package reviewrepo

import (
	"context"
	"database/sql"
)

type Row struct {
	ID             int64
	UserID         int64
	FullName       string
	ProfilePicture *string
	Rating         int
	Pros           string
	Cons           string
	Comment        string
	Image          *string
}

type Repo interface {
	ListByBook(ctx context.Context, bookID int64) ([]Row, error)
	Insert(ctx context.Context, userID, bookID int64, rating int, pros, cons, comment string, image *string) (int64, error)
	UserSnapshot(ctx context.Context, userID int64) (fullName string, avatar *string, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]Row, error) {
	const q = `
		SELECT r.id, r.user_id, u.full_name, u.profile_picture,
			r.rating, r.pros, r.cons, r.comment, r.image
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var rv Row
		if err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.FullName, &rv.ProfilePicture,
			&rv.Rating, &rv.Pros, &rv.Cons, &rv.Comment, &rv.Image,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, userID, bookID int64, rating int, pros, cons, comment string, image *string) (int64, error) {
	const q = `
		INSERT INTO reviews (user_id, book_id, rating, pros, cons, comment, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, userID, bookID, rating, pros, cons, comment, image).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) UserSnapshot(ctx context.Context, userID int64) (string, *string, error) {
	const q = `SELECT full_name, profile_picture FROM users WHERE id = $1`
	var name string
	var avatar *string
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&name, &avatar)
	return name, avatar, err
}
