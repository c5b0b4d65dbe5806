package rental

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
	rrepo "bookstore/repository/rental"
	userrepo "bookstore/repository/user"
	"bookstore/util/access"
)

// errors used by controllers

type ErrCode string

const (
	ErrOutOfStock   ErrCode = "OUT_OF_STOCK"
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrNotActive    ErrCode = "NOT_ACTIVE"
	ErrNotPending   ErrCode = "NOT_PENDING"
	ErrBadInput     ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// row shapes exposed to controllers

type PendingRequest = rrepo.PendingRequestRow
type ActiveRental = rrepo.ActiveRentalRow
type Decision = model.RequestStatus

type Repo interface {
	InsertRequest(ctx context.Context, userID, bookID int64, returnDate string) (int64, error)
	ListPendingRequests(ctx context.Context) ([]PendingRequest, error)
	GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.RentalRequest, error)
	SetRequestStatus(ctx context.Context, tx *sql.Tx, id int64, status model.RequestStatus) error

	InsertRental(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnDate, paymentMethod string) (int64, error)
	RentalStockForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error)
	AdjustRentalStock(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error
	GetRentalForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (bookID int64, status string, err error)
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error

	BookExists(ctx context.Context, bookID int64) (bool, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]ActiveRental, error)
}

// Reader = repository shape
type Reader = userrepo.Reader

type ReaderRepo interface {
	ListByRole(ctx context.Context, roleID int64) ([]Reader, error)
}

type Service interface {
	// Submit: a member asks to rent a book; stays pending until a
	// librarian resolves it.
	Submit(ctx context.Context, id access.Identity, bookID int64, returnDate string) (int64, error)

	// ListPending: librarian view of open requests.
	ListPending(ctx context.Context, id access.Identity) ([]PendingRequest, error)

	// Resolve: librarian approves or denies a pending request. Approval
	// also opens the rental.
	Resolve(ctx context.Context, id access.Identity, requestID int64, decision Decision) error

	// Issue: librarian opens a walk-in rental directly, consuming one
	// unit of rental stock.
	Issue(ctx context.Context, id access.Identity, userID, bookID int64, returnDate, paymentMethod string) (int64, error)

	// Close: librarian marks a rental returned and puts the copy back.
	Close(ctx context.Context, id access.Identity, rentalID int64) error

	ActiveForUser(ctx context.Context, id access.Identity, targetUserID int64) ([]ActiveRental, error)
	Readers(ctx context.Context, id access.Identity) ([]Reader, error)
}

// ----- Service implementation -----

type service struct {
	db *sql.DB
	r  Repo
	u  ReaderRepo
}

func New(db *sql.DB, r Repo, u ReaderRepo) Service {
	return &service{db: db, r: r, u: u}
}

func (s *service) Submit(ctx context.Context, id access.Identity, bookID int64, returnDate string) (int64, error) {
	if bookID <= 0 || returnDate == "" {
		return 0, makeErr(ErrBadInput)
	}

	exists, err := s.r.BookExists(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, makeErr(ErrBookNotFound)
	}

	// Duplicate pending requests for the same (user, book) are allowed.
	return s.r.InsertRequest(ctx, id.UserID, bookID, returnDate)
}

func (s *service) ListPending(ctx context.Context, id access.Identity) ([]PendingRequest, error) {
	if err := access.Require(id, access.RoleLibrarian); err != nil {
		return nil, err
	}
	return s.r.ListPendingRequests(ctx)
}

// Resolve transitions a pending request and, on approval, opens the
// rental in the same transaction. Approval intentionally does not touch
// rental_stock: requests are adjudicated on paper and the copy is handed
// over in store, where direct issuance accounts for it.
func (s *service) Resolve(ctx context.Context, id access.Identity, requestID int64, decision Decision) (err error) {
	if err := access.Require(id, access.RoleLibrarian); err != nil {
		return err
	}
	if decision != model.RequestApproved && decision != model.RequestDenied {
		return makeErr(ErrBadInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	req, err := s.r.GetRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if req.Status != model.RequestPending {
		return makeErr(ErrNotPending)
	}

	if err = s.r.SetRequestStatus(ctx, tx, requestID, decision); err != nil {
		return err
	}

	if decision == model.RequestApproved {
		if _, err = s.r.InsertRental(ctx, tx, req.UserID, req.BookID, req.RequestedReturnDate, "in_store"); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) Issue(ctx context.Context, id access.Identity, userID, bookID int64, returnDate, paymentMethod string) (rentalID int64, err error) {
	if err := access.Require(id, access.RoleLibrarian); err != nil {
		return 0, err
	}
	if userID <= 0 || bookID <= 0 || returnDate == "" || paymentMethod == "" {
		return 0, makeErr(ErrBadInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Stock is re-checked under the row lock so two librarians issuing
	// the last copy cannot both succeed.
	stock, err := s.r.RentalStockForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrBookNotFound)
		}
		return 0, err
	}
	if stock <= 0 {
		return 0, makeErr(ErrOutOfStock)
	}

	rentalID, err = s.r.InsertRental(ctx, tx, userID, bookID, returnDate, paymentMethod)
	if err != nil {
		return 0, err
	}
	if err = s.r.AdjustRentalStock(ctx, tx, bookID, -1); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return rentalID, nil
}

func (s *service) Close(ctx context.Context, id access.Identity, rentalID int64) (err error) {
	if err := access.Require(id, access.RoleLibrarian); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bookID, status, err := s.r.GetRentalForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	// Guard against double close: re-closing would increment stock twice.
	if status != string(model.RentalActive) {
		return makeErr(ErrNotActive)
	}

	if err = s.r.MarkReturned(ctx, tx, rentalID); err != nil {
		return err
	}
	if err = s.r.AdjustRentalStock(ctx, tx, bookID, 1); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) ActiveForUser(ctx context.Context, id access.Identity, targetUserID int64) ([]ActiveRental, error) {
	if targetUserID <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	return s.r.ListActiveByUser(ctx, targetUserID)
}

func (s *service) Readers(ctx context.Context, id access.Identity) ([]Reader, error) {
	if err := access.Require(id, access.RoleLibrarian); err != nil {
		return nil, err
	}
	return s.u.ListByRole(ctx, int64(access.RoleMember))
}
