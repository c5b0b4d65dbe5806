package reviewsvc

import (
	"context"
	"errors"
	"strings"

	"bookstore/model"
	repo "bookstore/repository/review"
)

var ErrBadInput = errors.New("invalid payload")

type CreateInput struct {
	BookID  int64
	Rating  int
	Pros    string
	Cons    string
	Comment string
	Image   *string
}

type Repo = repo.Repo

type Service interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	Create(ctx context.Context, userID int64, in CreateInput) (*model.Review, error)
}

type service struct {
	r         Repo
	serverURL string
}

func New(r Repo, serverURL string) Service {
	return &service{r: r, serverURL: strings.TrimRight(serverURL, "/")}
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	rows, err := s.r.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Review{
			ID:         r.ID,
			FullName:   shortName(r.FullName),
			UserAvatar: s.avatarURL(r.ProfilePicture),
			Rating:     r.Rating,
			Pros:       r.Pros,
			Cons:       r.Cons,
			Comment:    r.Comment,
			Image:      s.imageURL(r.Image),
		})
	}
	return out, nil
}

// Create stores the review together with a snapshot of the reviewer's
// name and avatar taken at write time.
func (s *service) Create(ctx context.Context, userID int64, in CreateInput) (*model.Review, error) {
	if in.BookID <= 0 || in.Rating < 1 || in.Rating > 5 {
		return nil, ErrBadInput
	}

	fullName, avatar, err := s.r.UserSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	id, err := s.r.Insert(ctx, userID, in.BookID, in.Rating, in.Pros, in.Cons, in.Comment, in.Image)
	if err != nil {
		return nil, err
	}

	return &model.Review{
		ID:         id,
		FullName:   shortName(fullName),
		UserAvatar: s.avatarURL(avatar),
		Rating:     in.Rating,
		Pros:       in.Pros,
		Cons:       in.Cons,
		Comment:    in.Comment,
		Image:      s.imageURL(in.Image),
	}, nil
}

// shortName keeps at most the first two words of the reviewer's name.
func shortName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}

func (s *service) avatarURL(ref *string) *string {
	return s.absolute(ref)
}

func (s *service) imageURL(ref *string) *string {
	return s.absolute(ref)
}

func (s *service) absolute(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	u := s.serverURL + "/" + strings.TrimLeft(*ref, "/")
	return &u
}
