package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/model"
	"bookstore/util/access"
	"bookstore/util/hash"
	jwtutil "bookstore/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadInput     = errors.New("bad input")
	ErrInvalidCreds = errors.New("invalid credentials")
)

type Session struct {
	Token    string `json:"token"`
	RoleID   int64  `json:"roleId"`
	FullName string `json:"fullName"`
}

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*Session, error)
	Login(ctx context.Context, req model.LoginReq) (*Session, error)
}

type service struct {
	ur     Repo
	secret string
}

func New(ur Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*Session, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
		return nil, ErrBadInput
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Self-registration always creates a member account.
	u := &model.User{
		RoleID:       int64(access.RoleMember),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.RoleID, 24)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, RoleID: u.RoleID, FullName: u.FullName}, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*Session, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrBadInput
	}

	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCreds
		}
		return nil, err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCreds
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.RoleID, 24)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, RoleID: u.RoleID, FullName: u.FullName}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
