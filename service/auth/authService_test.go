// service/auth/authService_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	"bookstore/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	sess, err := svc.Register(ctx, model.RegisterReq{
		FullName: "Ivan Petrov",
		Email:    "USER@Example.COM",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, int64(2), sess.RoleID)
	require.Equal(t, "Ivan Petrov", sess.FullName)
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: " ",
		Email:    "x@example.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrBadInput)

	_, err = svc.Register(context.Background(), model.RegisterReq{
		FullName: "Ivan",
		Email:    "x@example.com",
		Password: "123",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(m, "test-secret")

	_, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "Ivan",
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "Ivan",
		Email:    "ok@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				RoleID:       3,
				FullName:     "Anna K",
				Email:        "user@example.com",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	sess, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, int64(3), sess.RoleID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 101, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret")

	_, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, err := svc.Login(context.Background(), model.LoginReq{Email: " ", Password: ""})
	require.ErrorIs(t, err, ErrBadInput)
}
