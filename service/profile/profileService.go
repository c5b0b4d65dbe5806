package profilesvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bookstore/model"
	"bookstore/util/hash"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrBadInput    = errors.New("bad input")
	ErrWrongOldPwd = errors.New("old password does not match")
)

type Repo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, email string) error
	PasswordHash(ctx context.Context, id int64) (string, error)
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	SetProfilePicture(ctx context.Context, id int64, ref string) error
}

type Service interface {
	Get(ctx context.Context, userID int64) (*model.User, error)
	Update(ctx context.Context, userID int64, fullName, email string) error
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	SetAvatar(ctx context.Context, userID int64, ref string) error
}

type service struct{ ur Repo }

func New(ur Repo) Service { return &service{ur: ur} }

func (s *service) Get(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, userID int64, fullName, email string) error {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(email) == "" {
		return ErrBadInput
	}
	return s.ur.UpdateProfile(ctx, userID, strings.TrimSpace(fullName), strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrBadInput
	}

	current, err := s.ur.PasswordHash(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !hash.Check(current, oldPassword) {
		return ErrWrongOldPwd
	}

	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.ur.SetPasswordHash(ctx, userID, hashed)
}

func (s *service) SetAvatar(ctx context.Context, userID int64, ref string) error {
	if ref == "" {
		return ErrBadInput
	}
	return s.ur.SetProfilePicture(ctx, userID, ref)
}
