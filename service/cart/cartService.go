package cartsvc

import (
	"context"
	"errors"

	"bookstore/model"
	repo "bookstore/repository/cart"
)

var (
	ErrBadInput = errors.New("invalid payload")
	ErrNotFound = errors.New("cart item not found")
)

type Repo = repo.Repo

type Service interface {
	Add(ctx context.Context, userID, bookID, quantity int64) error
	Update(ctx context.Context, userID, bookID, quantity int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	List(ctx context.Context, userID int64) ([]model.CartRow, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, userID, bookID, quantity int64) error {
	if bookID <= 0 || quantity < 1 {
		return ErrBadInput
	}
	return s.r.Upsert(ctx, userID, bookID, quantity)
}

func (s *service) Update(ctx context.Context, userID, bookID, quantity int64) error {
	if bookID <= 0 || quantity < 1 {
		return ErrBadInput
	}
	aff, err := s.r.UpdateQuantity(ctx, userID, bookID, quantity)
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, bookID int64) error {
	if bookID <= 0 {
		return ErrBadInput
	}
	return s.r.Delete(ctx, userID, bookID)
}

func (s *service) List(ctx context.Context, userID int64) ([]model.CartRow, error) {
	return s.r.List(ctx, userID)
}
