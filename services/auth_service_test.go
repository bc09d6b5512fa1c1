package services

import (
	"fmt"
	"hive-signal/auth"
	"hive-signal/domain"
	"hive-signal/errors"
	"hive-signal/mocks"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)
	svc := NewAuthService(slog.Default(), mockRepo)

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		expected := domain.Account{ID: "user-uuid", Username: "alice"}

		// The repository receives a hash, never the plain password
		mockRepo.EXPECT().
			CreateUser("alice", gomock.Not("secret1")).
			Return(expected, nil).
			Times(1)

		account, err := svc.Register("  alice ", "secret1")

		req.NoError(err)
		req.Equal(expected, account)
	})

	t.Run("should fail when password is too short", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Register("alice", "12345")

		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should report a taken username as a validation failure", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().
			CreateUser("Alice", gomock.Any()).
			Return(domain.Account{}, errors.ErrUserAlreadyExists).
			Times(1)

		_, err := svc.Register("Alice", "secret1")

		req.ErrorIs(err, errors.ErrValidation)
		req.EqualError(err, "username has already been taken")
	})

	t.Run("should propagate storage failures", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().
			CreateUser("bob", gomock.Any()).
			Return(domain.Account{}, fmt.Errorf("disk full")).
			Times(1)

		_, err := svc.Register("bob", "secret1")

		req.Error(err)
		req.NotErrorIs(err, errors.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)
	svc := NewAuthService(slog.Default(), mockRepo)

	hashedPassword, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := domain.Account{ID: "uuid-123", Username: "alice", PasswordHash: hashedPassword}

	t.Run("should login with correct credentials", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername("alice").Return(stored, nil).Times(1)

		account, err := svc.Login("alice", "secret1")

		req.NoError(err)
		req.Equal("uuid-123", account.ID)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername("alice").Return(stored, nil).Times(1)

		_, err := svc.Login("alice", "not-it")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should not reveal unknown users", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername("ghost").Return(domain.Account{}, errors.ErrUserNotFound).Times(1)

		_, err := svc.Login("ghost", "secret1")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should require both fields", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername(gomock.Any()).Times(0)

		_, err := svc.Login("", "secret1")
		req.ErrorIs(err, errors.ErrValidation)

		_, err = svc.Login("alice", "")
		req.ErrorIs(err, errors.ErrValidation)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)
	svc := NewAuthService(slog.Default(), mockRepo)

	mockRepo.EXPECT().GetUserByID("gone").Return(domain.Account{}, errors.ErrUserNotFound)
	_, err := svc.CurrentUser("gone")
	req.ErrorIs(err, errors.ErrUnauthenticated)

	mockRepo.EXPECT().GetUserByID("uuid-123").Return(domain.Account{ID: "uuid-123", Username: "alice"}, nil)
	account, err := svc.CurrentUser("uuid-123")
	req.NoError(err)
	req.Equal("alice", account.Username)
}
