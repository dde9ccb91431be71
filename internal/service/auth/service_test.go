package auth_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirwalterjones/sessionremind/internal/config"
	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
	"github.com/sirwalterjones/sessionremind/internal/service/auth"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if f.byEmail == nil {
		f.byEmail = make(map[string]*model.User)
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.New()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func newService() (*auth.Service, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	return auth.NewService(repo, config.JWTConfig{Secret: "test-secret", ExpiryHours: 1}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "walter@example.com",
		Name:     "Walter Jones",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	token, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "walter@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	ownerID, err := svc.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ownerID)
}

func TestRegisterDuplicateEmailIsClientError(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "walter@example.com",
		Name:     "Walter Jones",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{
		Email:    "walter@example.com",
		Name:     "Someone Else",
		Password: "other horse",
	})
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "walter@example.com",
		Name:     "Walter Jones",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "walter@example.com",
		Password: "wrong horse",
	})
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestLoginSuspendedAccount(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "walter@example.com",
		Name:     "Walter Jones",
		Password: "correct horse",
	})
	require.NoError(t, err)

	repo.byEmail["walter@example.com"].Status = model.UserStatusSuspended

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "walter@example.com",
		Password: "correct horse",
	})
	assert.Error(t, err)
}
