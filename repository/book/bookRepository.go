package bookrepo

import (
	"context"
	"database/sql"
	"strings"

	"bookstore/model"
)

type SearchRow struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Repo interface {
	CreateWithCategories(ctx context.Context, b *model.Book, categoryIDs []int64) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	SearchByTitle(ctx context.Context, query string) ([]SearchRow, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// CreateWithCategories inserts the book and its category links in one
// transaction so a half-created catalog entry never becomes visible.
func (r *repo) CreateWithCategories(ctx context.Context, b *model.Book, categoryIDs []int64) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const ins = `
		INSERT INTO books (title, author, year, price, available, rentable, stock, rental_stock, image, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`
	if err = tx.QueryRowContext(ctx, ins,
		b.Title, b.Author, b.Year, b.Price, b.Available, b.Rentable,
		b.Stock, b.RentalStock, b.Image, b.Description,
	).Scan(&id); err != nil {
		return 0, err
	}

	const link = `INSERT INTO book_categories (book_id, category_id) VALUES ($1,$2)`
	for _, cid := range categoryIDs {
		if _, err = tx.ExecContext(ctx, link, id, cid); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.year, b.price, b.stock, b.rental_stock,
			b.available, b.rentable, b.description, b.image,
			COALESCE(string_agg(c.name, ', ' ORDER BY c.name), '') AS categories
		FROM books b
		LEFT JOIN book_categories bc ON bc.book_id = b.id
		LEFT JOIN categories c ON c.id = bc.category_id
		GROUP BY b.id
		ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		var cats string
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Year, &b.Price, &b.Stock, &b.RentalStock,
			&b.Available, &b.Rentable, &b.Description, &b.Image, &cats,
		); err != nil {
			return nil, err
		}
		b.Categories = splitCategories(cats)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.year, b.price, b.stock, b.rental_stock,
			b.available, b.rentable, b.description, b.image,
			COALESCE(string_agg(c.name, ', ' ORDER BY c.name), '') AS categories
		FROM books b
		LEFT JOIN book_categories bc ON bc.book_id = b.id
		LEFT JOIN categories c ON c.id = bc.category_id
		WHERE b.id = $1
		GROUP BY b.id`
	var b model.Book
	var cats string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Year, &b.Price, &b.Stock, &b.RentalStock,
		&b.Available, &b.Rentable, &b.Description, &b.Image, &cats,
	)
	if err != nil {
		return nil, err
	}
	b.Categories = splitCategories(cats)
	return &b, nil
}

func (r *repo) SearchByTitle(ctx context.Context, query string) ([]SearchRow, error) {
	const q = `
		SELECT id, title
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchRow
	for rows.Next() {
		var s SearchRow
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) Categories(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func splitCategories(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ", ")
}
