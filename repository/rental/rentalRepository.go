// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type PendingRequestRow struct {
	ID                  int64  `json:"id"`
	UserID              int64  `json:"user_id"`
	BookID              int64  `json:"book_id"`
	RequestedReturnDate string `json:"requested_return_date"`
	Status              string `json:"status"`
	UserName            string `json:"user_name"`
	BookTitle           string `json:"book_title"`
}

type ActiveRentalRow struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	BookID        int64  `json:"book_id"`
	RentalDate    string `json:"rental_date"`
	ReturnDate    string `json:"return_date"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	BookTitle     string `json:"book_title"`
}

type Repo interface {
	// Requests
	InsertRequest(ctx context.Context, userID, bookID int64, returnDate string) (int64, error)
	ListPendingRequests(ctx context.Context) ([]PendingRequestRow, error)
	GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.RentalRequest, error)
	SetRequestStatus(ctx context.Context, tx *sql.Tx, id int64, status model.RequestStatus) error

	// Rentals & inventory ledger
	InsertRental(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnDate, paymentMethod string) (int64, error)
	RentalStockForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error)
	AdjustRentalStock(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error
	GetRentalForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (bookID int64, status string, err error)
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error

	// Reads
	BookExists(ctx context.Context, bookID int64) (bool, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]ActiveRentalRow, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

// Requests

func (r *repo) InsertRequest(ctx context.Context, userID, bookID int64, returnDate string) (int64, error) {
	const q = `
		INSERT INTO rental_requests (user_id, book_id, requested_return_date, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, userID, bookID, returnDate).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ListPendingRequests(ctx context.Context) ([]PendingRequestRow, error) {
	const q = `
		SELECT rr.id, rr.user_id, rr.book_id, rr.requested_return_date, rr.status,
			u.full_name AS user_name,
			b.title     AS book_title
		FROM rental_requests rr
		JOIN users u ON u.id = rr.user_id
		JOIN books b ON b.id = rr.book_id
		WHERE rr.status = 'pending'
		ORDER BY rr.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingRequestRow
	for rows.Next() {
		var p PendingRequestRow
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BookID, &p.RequestedReturnDate, &p.Status,
			&p.UserName, &p.BookTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.RentalRequest, error) {
	const q = `
		SELECT id, user_id, book_id, requested_return_date, status, created_at
		FROM rental_requests
		WHERE id = $1
		FOR UPDATE`
	req := &model.RentalRequest{}
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.UserID, &req.BookID, &req.RequestedReturnDate, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) SetRequestStatus(ctx context.Context, tx *sql.Tx, id int64, status model.RequestStatus) error {
	const q = `
		UPDATE rental_requests
		SET status = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

// Rentals & inventory ledger

func (r *repo) InsertRental(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnDate, paymentMethod string) (int64, error) {
	const q = `
		INSERT INTO rentals (user_id, book_id, rental_date, return_date, status, payment_method)
		VALUES ($1, $2, NOW(), $3, 'active', $4)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, userID, bookID, returnDate, paymentMethod).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) RentalStockForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error) {
	const q = `
		SELECT rental_stock
		FROM books
		WHERE id = $1
		FOR UPDATE`
	var stock int64
	err := tx.QueryRowContext(ctx, q, bookID).Scan(&stock)
	return stock, err
}

// AdjustRentalStock moves the counter and recomputes rentable in one
// statement so the invariant rentable == (rental_stock > 0) cannot be
// observed broken.
func (r *repo) AdjustRentalStock(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
	const q = `
		UPDATE books
		SET rental_stock = rental_stock + $2,
			rentable = rental_stock + $2 > 0
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, bookID, delta)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) GetRentalForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (int64, string, error) {
	const q = `
		SELECT book_id, status
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	var bookID int64
	var status string
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(&bookID, &status)
	return bookID, status, err
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error {
	const q = `
		UPDATE rentals
		SET status = 'returned'
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID)
	return err
}

// Reads

func (r *repo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) ListActiveByUser(ctx context.Context, userID int64) ([]ActiveRentalRow, error) {
	const q = `
		SELECT r.id, r.user_id, r.book_id, r.rental_date, r.return_date,
			r.status, r.payment_method,
			b.title AS book_title
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		AND r.status = 'active'
		ORDER BY r.rental_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActiveRentalRow
	for rows.Next() {
		var a ActiveRentalRow
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.BookID, &a.RentalDate, &a.ReturnDate,
			&a.Status, &a.PaymentMethod, &a.BookTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
