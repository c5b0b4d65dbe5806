package userrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Reader struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, email string) error
	PasswordHash(ctx context.Context, id int64) (string, error)
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	SetProfilePicture(ctx context.Context, id int64, ref string) error
	ListByRole(ctx context.Context, roleID int64) ([]Reader, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (role_id, full_name, email, password_hash, phone)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		u.RoleID, u.FullName, u.Email, u.PasswordHash, u.Phone,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, role_id, full_name, email, phone, profile_picture, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.RoleID, &u.FullName, &u.Email, &u.Phone, &u.ProfilePicture, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, role_id, full_name, email, phone, profile_picture, password_hash, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.RoleID, &u.FullName, &u.Email, &u.Phone, &u.ProfilePicture, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, id int64, fullName, email string) error {
	const q = `
		UPDATE users
		SET full_name = $2, email = $3
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, fullName, email)
	return err
}

func (r *repo) PasswordHash(ctx context.Context, id int64) (string, error) {
	const q = `SELECT password_hash FROM users WHERE id = $1`
	var h string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h)
	return h, err
}

func (r *repo) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	const q = `UPDATE users SET password_hash = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, hash)
	return err
}

func (r *repo) SetProfilePicture(ctx context.Context, id int64, ref string) error {
	const q = `UPDATE users SET profile_picture = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, ref)
	return err
}

func (r *repo) ListByRole(ctx context.Context, roleID int64) ([]Reader, error) {
	const q = `
		SELECT id, full_name, email
		FROM users
		WHERE role_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reader
	for rows.Next() {
		var u Reader
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
