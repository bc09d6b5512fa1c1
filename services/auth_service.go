package services

import (
	"fmt"
	"hive-signal/auth"
	"hive-signal/domain"
	"hive-signal/errors"
	"hive-signal/repositories"
	"log/slog"
	"strings"
)

type IAuthService interface {
	Register(username, password string) (domain.Account, error)
	Login(username, password string) (domain.Account, error)
	CurrentUser(accountID string) (domain.Account, error)
}

type AuthService struct {
	log            *slog.Logger
	userRepository repositories.IUserRepository
}

func NewAuthService(log *slog.Logger, repo repositories.IUserRepository) IAuthService {
	return &AuthService{log: log, userRepository: repo}
}

func (s *AuthService) Register(username, password string) (domain.Account, error) {
	username = strings.TrimSpace(username)

	// 1. Validate before the expensive hashing
	if err := auth.ValidateRegister(auth.RegisterRequest{Username: username, Password: password}); err != nil {
		return domain.Account{}, err
	}

	// 2. Hash here so the repository never sees a plain password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist, the repository enforces case-insensitive uniqueness
	account, err := s.userRepository.CreateUser(username, hashedPassword)
	if errors.Is(err, errors.ErrUserAlreadyExists) {
		return domain.Account{}, errors.NewValidationError(errors.Violation{Field: "username", Message: "has already been taken"})
	}
	if err != nil {
		s.log.Error("User registration failed", "err", err)
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AuthService) Login(username, password string) (domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.Account{}, errors.NewValidationError(
			errors.Violation{Field: "username and password", Message: "are required"})
	}

	account, err := s.userRepository.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, errors.ErrUserNotFound) {
			s.log.Error("User lookup failed", "err", err)
		}
		// Same answer for unknown users and wrong passwords
		return domain.Account{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, account.PasswordHash)
	if err != nil || !match {
		return domain.Account{}, errors.ErrInvalidCredentials
	}
	return account, nil
}

func (s *AuthService) CurrentUser(accountID string) (domain.Account, error) {
	account, err := s.userRepository.GetUserByID(accountID)
	if errors.Is(err, errors.ErrUserNotFound) {
		return domain.Account{}, errors.ErrUnauthenticated
	}
	return account, err
}
