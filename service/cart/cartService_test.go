package cartsvc_test

import (
	"context"
	"errors"
	"testing"

	"bookstore/model"
	cartsvc "bookstore/service/cart"
)

type repoMock struct {
	upsertFn func(ctx context.Context, userID, bookID, quantity int64) error
	updateFn func(ctx context.Context, userID, bookID, quantity int64) (int64, error)
	deleteFn func(ctx context.Context, userID, bookID int64) error
	listFn   func(ctx context.Context, userID int64) ([]model.CartRow, error)
}

func (m *repoMock) Upsert(ctx context.Context, userID, bookID, quantity int64) error {
	return m.upsertFn(ctx, userID, bookID, quantity)
}
func (m *repoMock) UpdateQuantity(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
	return m.updateFn(ctx, userID, bookID, quantity)
}
func (m *repoMock) Delete(ctx context.Context, userID, bookID int64) error {
	return m.deleteFn(ctx, userID, bookID)
}
func (m *repoMock) List(ctx context.Context, userID int64) ([]model.CartRow, error) {
	return m.listFn(ctx, userID)
}

func TestAdd_Validation(t *testing.T) {
	s := cartsvc.New(&repoMock{})

	if err := s.Add(context.Background(), 1, 0, 1); !errors.Is(err, cartsvc.ErrBadInput) {
		t.Fatalf("got %v; want ErrBadInput", err)
	}
	if err := s.Add(context.Background(), 1, 5, 0); !errors.Is(err, cartsvc.ErrBadInput) {
		t.Fatalf("got %v; want ErrBadInput", err)
	}
}

func TestAdd_Upserts(t *testing.T) {
	var gotQty int64
	m := &repoMock{
		upsertFn: func(ctx context.Context, userID, bookID, quantity int64) error {
			gotQty = quantity
			return nil
		},
	}
	s := cartsvc.New(m)

	if err := s.Add(context.Background(), 1, 5, 2); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if gotQty != 2 {
		t.Fatalf("quantity = %d; want 2", gotQty)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
			return 0, nil
		},
	}
	s := cartsvc.New(m)

	if err := s.Update(context.Background(), 1, 5, 3); !errors.Is(err, cartsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, userID, bookID, quantity int64) (int64, error) {
			return 1, nil
		},
	}
	s := cartsvc.New(m)

	if err := s.Update(context.Background(), 1, 5, 3); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}
