package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
	repo "bookstore/repository/book"
	"bookstore/util/access"
)

var (
	ErrBadInput = errors.New("invalid payload")
	ErrNotFound = errors.New("book not found")
)

type SearchRow = repo.SearchRow

type CreateInput struct {
	Title       string
	Author      string
	Year        int
	Price       float64
	Stock       int64
	RentalStock int64
	Available   bool
	Rentable    bool
	Description string
	Image       *string
	CategoryIDs []int64
}

type Repo interface {
	CreateWithCategories(ctx context.Context, b *model.Book, categoryIDs []int64) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	SearchByTitle(ctx context.Context, query string) ([]SearchRow, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type Service interface {
	Create(ctx context.Context, id access.Identity, in CreateInput) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, bookID int64) (*model.Book, error)
	Search(ctx context.Context, query string) ([]SearchRow, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

// Create adds a catalog entry. Only the store owner (role 1) manages the
// catalog.
func (s *service) Create(ctx context.Context, id access.Identity, in CreateInput) (int64, error) {
	if err := access.Require(id, access.RoleAdmin); err != nil {
		return 0, err
	}
	if in.Title == "" || in.Author == "" || in.Year == 0 || in.Price < 0 {
		return 0, ErrBadInput
	}

	b := &model.Book{
		Title:       in.Title,
		Author:      in.Author,
		Year:        in.Year,
		Price:       in.Price,
		Stock:       in.Stock,
		RentalStock: in.RentalStock,
		Available:   in.Available,
		Rentable:    in.Rentable,
		Description: in.Description,
		Image:       in.Image,
	}
	return s.r.CreateWithCategories(ctx, b, in.CategoryIDs)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, bookID int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Search(ctx context.Context, query string) ([]SearchRow, error) {
	if query == "" {
		return []SearchRow{}, nil
	}
	return s.r.SearchByTitle(ctx, query)
}

func (s *service) Categories(ctx context.Context) ([]model.Category, error) {
	return s.r.Categories(ctx)
}
