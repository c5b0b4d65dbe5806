package rental_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	rentalsvc "bookstore/service/rental"
	"bookstore/util/access"
)

var (
	librarian = access.Identity{UserID: 1, Role: access.RoleLibrarian}
	member    = access.Identity{UserID: 2, Role: access.RoleMember}
	admin     = access.Identity{UserID: 3, Role: access.RoleAdmin}
)

// mockRepo records every mutation so tests can assert exactly which
// writes happened inside the transaction.

type mockRepo struct {
	bookExists    bool
	bookExistsErr error

	stock    int64
	stockErr error

	request    *model.RentalRequest
	requestErr error

	rentalBookID int64
	rentalStatus string
	rentalErr    error

	insertedRequests []int64
	insertedRentals  []insertedRental
	statusChanges    []model.RequestStatus
	adjustments      []int64
	returnedRentals  []int64
}

type insertedRental struct {
	userID, bookID int64
	returnDate     string
	paymentMethod  string
}

func (m *mockRepo) InsertRequest(ctx context.Context, userID, bookID int64, returnDate string) (int64, error) {
	m.insertedRequests = append(m.insertedRequests, bookID)
	return 11, nil
}

func (m *mockRepo) ListPendingRequests(ctx context.Context) ([]rentalsvc.PendingRequest, error) {
	return []rentalsvc.PendingRequest{{ID: 1, Status: "pending"}}, nil
}

func (m *mockRepo) GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.RentalRequest, error) {
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	return m.request, nil
}

func (m *mockRepo) SetRequestStatus(ctx context.Context, tx *sql.Tx, id int64, status model.RequestStatus) error {
	m.statusChanges = append(m.statusChanges, status)
	return nil
}

func (m *mockRepo) InsertRental(ctx context.Context, tx *sql.Tx, userID, bookID int64, returnDate, paymentMethod string) (int64, error) {
	m.insertedRentals = append(m.insertedRentals, insertedRental{userID, bookID, returnDate, paymentMethod})
	return 77, nil
}

func (m *mockRepo) RentalStockForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error) {
	if m.stockErr != nil {
		return 0, m.stockErr
	}
	return m.stock, nil
}

func (m *mockRepo) AdjustRentalStock(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
	m.adjustments = append(m.adjustments, delta)
	return nil
}

func (m *mockRepo) GetRentalForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (int64, string, error) {
	if m.rentalErr != nil {
		return 0, "", m.rentalErr
	}
	return m.rentalBookID, m.rentalStatus, nil
}

func (m *mockRepo) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error {
	m.returnedRentals = append(m.returnedRentals, rentalID)
	return nil
}

func (m *mockRepo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	return m.bookExists, m.bookExistsErr
}

func (m *mockRepo) ListActiveByUser(ctx context.Context, userID int64) ([]rentalsvc.ActiveRental, error) {
	return []rentalsvc.ActiveRental{{ID: 5, UserID: userID, Status: "active"}}, nil
}

type mockReaders struct{ rows []rentalsvc.Reader }

func (m *mockReaders) ListByRole(ctx context.Context, roleID int64) ([]rentalsvc.Reader, error) {
	return m.rows, nil
}

func newService(t *testing.T, r *mockRepo) (rentalsvc.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return rentalsvc.New(db, r, &mockReaders{}), mock
}

// --- Submit ---

func TestSubmit_BadInput(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.Submit(context.Background(), member, 0, "2024-12-01")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))

	_, err = svc.Submit(context.Background(), member, 42, "")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))
}

func TestSubmit_BookNotFound(t *testing.T) {
	svc, _ := newService(t, &mockRepo{bookExists: false})

	_, err := svc.Submit(context.Background(), member, 42, "2024-12-01")
	require.Equal(t, rentalsvc.ErrBookNotFound, rentalsvc.Code(err))
}

func TestSubmit_Success(t *testing.T) {
	r := &mockRepo{bookExists: true}
	svc, _ := newService(t, r)

	id, err := svc.Submit(context.Background(), member, 42, "2024-12-01")
	require.NoError(t, err)
	require.Equal(t, int64(11), id)
	require.Len(t, r.insertedRequests, 1)
}

// --- ListPending / Readers role gates ---

func TestListPending_RequiresLibrarian(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.ListPending(context.Background(), member)
	require.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.ListPending(context.Background(), admin)
	require.ErrorIs(t, err, access.ErrForbidden)

	rows, err := svc.ListPending(context.Background(), librarian)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestReaders_RequiresLibrarian(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.Readers(context.Background(), member)
	require.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.Readers(context.Background(), librarian)
	require.NoError(t, err)
}

// --- Resolve ---

func TestResolve_InvalidDecision(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	err := svc.Resolve(context.Background(), librarian, 1, "maybe")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))
}

func TestResolve_Forbidden(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	err := svc.Resolve(context.Background(), member, 1, model.RequestApproved)
	require.ErrorIs(t, err, access.ErrForbidden)
}

func TestResolve_Approved_CreatesRental(t *testing.T) {
	r := &mockRepo{request: &model.RentalRequest{
		ID: 9, UserID: 2, BookID: 42,
		RequestedReturnDate: "2024-12-01",
		Status:              model.RequestPending,
	}}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Resolve(context.Background(), librarian, 9, model.RequestApproved)
	require.NoError(t, err)

	require.Equal(t, []model.RequestStatus{model.RequestApproved}, r.statusChanges)
	require.Len(t, r.insertedRentals, 1)
	require.Equal(t, insertedRental{
		userID: 2, bookID: 42,
		returnDate:    "2024-12-01",
		paymentMethod: "in_store",
	}, r.insertedRentals[0])
	// Approval never touches the inventory ledger.
	require.Empty(t, r.adjustments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_Denied_NoRental(t *testing.T) {
	r := &mockRepo{request: &model.RentalRequest{
		ID: 9, UserID: 2, BookID: 42, Status: model.RequestPending,
	}}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Resolve(context.Background(), librarian, 9, model.RequestDenied)
	require.NoError(t, err)

	require.Equal(t, []model.RequestStatus{model.RequestDenied}, r.statusChanges)
	require.Empty(t, r.insertedRentals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_AlreadyResolved(t *testing.T) {
	r := &mockRepo{request: &model.RentalRequest{
		ID: 9, Status: model.RequestApproved,
	}}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Resolve(context.Background(), librarian, 9, model.RequestDenied)
	require.Equal(t, rentalsvc.ErrNotPending, rentalsvc.Code(err))
	require.Empty(t, r.statusChanges)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_NotFound(t *testing.T) {
	r := &mockRepo{requestErr: sql.ErrNoRows}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Resolve(context.Background(), librarian, 404, model.RequestApproved)
	require.Equal(t, rentalsvc.ErrNotFound, rentalsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- Issue ---

func TestIssue_Forbidden(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.Issue(context.Background(), member, 2, 42, "2024-12-01", "card")
	require.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.Issue(context.Background(), admin, 2, 42, "2024-12-01", "card")
	require.ErrorIs(t, err, access.ErrForbidden)
}

func TestIssue_BadInput(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.Issue(context.Background(), librarian, 0, 42, "2024-12-01", "card")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))

	_, err = svc.Issue(context.Background(), librarian, 2, 42, "", "card")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))

	_, err = svc.Issue(context.Background(), librarian, 2, 42, "2024-12-01", "")
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))
}

func TestIssue_OutOfStock_NoWrites(t *testing.T) {
	r := &mockRepo{stock: 0}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Issue(context.Background(), librarian, 2, 42, "2024-12-01", "card")
	require.Equal(t, rentalsvc.ErrOutOfStock, rentalsvc.Code(err))
	require.Empty(t, r.insertedRentals)
	require.Empty(t, r.adjustments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssue_BookNotFound(t *testing.T) {
	r := &mockRepo{stockErr: sql.ErrNoRows}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Issue(context.Background(), librarian, 2, 404, "2024-12-01", "card")
	require.Equal(t, rentalsvc.ErrBookNotFound, rentalsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssue_Success_DecrementsStock(t *testing.T) {
	r := &mockRepo{stock: 1}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectCommit()

	id, err := svc.Issue(context.Background(), librarian, 2, 42, "2024-12-01", "card")
	require.NoError(t, err)
	require.Equal(t, int64(77), id)
	require.Len(t, r.insertedRentals, 1)
	require.Equal(t, []int64{-1}, r.adjustments)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- Close ---

func TestClose_Forbidden(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	err := svc.Close(context.Background(), member, 5)
	require.ErrorIs(t, err, access.ErrForbidden)
}

func TestClose_NotFound(t *testing.T) {
	r := &mockRepo{rentalErr: sql.ErrNoRows}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Close(context.Background(), librarian, 404)
	require.Equal(t, rentalsvc.ErrNotFound, rentalsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClose_AlreadyReturned(t *testing.T) {
	r := &mockRepo{rentalBookID: 42, rentalStatus: "returned"}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Close(context.Background(), librarian, 5)
	require.Equal(t, rentalsvc.ErrNotActive, rentalsvc.Code(err))
	// A second close must not re-increment stock.
	require.Empty(t, r.adjustments)
	require.Empty(t, r.returnedRentals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClose_Success_IncrementsStock(t *testing.T) {
	r := &mockRepo{rentalBookID: 42, rentalStatus: "active"}
	svc, mock := newService(t, r)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Close(context.Background(), librarian, 5)
	require.NoError(t, err)
	require.Equal(t, []int64{5}, r.returnedRentals)
	require.Equal(t, []int64{1}, r.adjustments)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- ActiveForUser ---

func TestActiveForUser(t *testing.T) {
	svc, _ := newService(t, &mockRepo{})

	_, err := svc.ActiveForUser(context.Background(), member, 0)
	require.Equal(t, rentalsvc.ErrBadInput, rentalsvc.Code(err))

	rows, err := svc.ActiveForUser(context.Background(), member, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].UserID)
}
