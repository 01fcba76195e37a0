package user

import (
	"context"
	"testing"
	"time"

	"storefront/domain/user"
	"storefront/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *ApplicationService {
	return NewApplicationService(memory.NewUserRepository(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService()

	registered, err := s.Register(context.Background(), RegisterRequest{
		Email:    "Kim@Example.com",
		Password: "correct horse",
		Name:     "Kim",
	})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", registered.Email, "email must be normalized")
	assert.Equal(t, string(user.TypeCustomer), registered.UserType)

	login, err := s.Login(context.Background(), LoginRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, registered.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newService()

	_, err := s.Register(context.Background(), RegisterRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
		Name:     "Kim",
	})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), RegisterRequest{
		Email:    "KIM@example.com",
		Password: "another pass",
		Name:     "Other Kim",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newService()

	_, err := s.Register(context.Background(), RegisterRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
		Name:     "Kim",
	})
	require.NoError(t, err)

	_, wrongPassword := s.Login(context.Background(), LoginRequest{
		Email:    "kim@example.com",
		Password: "wrong",
	})
	_, unknownEmail := s.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})

	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestResolveToken(t *testing.T) {
	s := newService()

	registered, err := s.Register(context.Background(), RegisterRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
		Name:     "Kim",
	})
	require.NoError(t, err)

	login, err := s.Login(context.Background(), LoginRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	u, err := s.ResolveToken(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID())

	_, err = s.ResolveToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// A token signed with a different secret must be rejected
	other := NewApplicationService(memory.NewUserRepository(), "other-secret", time.Hour)
	_, err = other.ResolveToken(context.Background(), login.Token)
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestExpiredTokenRejected(t *testing.T) {
	repo := memory.NewUserRepository()
	s := NewApplicationService(repo, "test-secret", time.Nanosecond)

	_, err := s.Register(context.Background(), RegisterRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
		Name:     "Kim",
	})
	require.NoError(t, err)

	login, err := s.Login(context.Background(), LoginRequest{
		Email:    "kim@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = s.ResolveToken(context.Background(), login.Token)
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
