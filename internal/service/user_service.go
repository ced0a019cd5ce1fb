package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"messagely/internal/auth"
	"messagely/internal/domain"
	"messagely/internal/repository"
)

// RegisterInput carries the fields required to create a new user.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserService describes user lifecycle operations. Login and Register mint a
// session token on success; the last-login timestamp is stamped before the
// token is issued.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	UpdateLoginTimestamp(ctx context.Context, username string) error
	GetProfile(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.PublicProfile, error)
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenCodec
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)

	switch {
	case input.Username == "":
		return "", domain.Validationf("username is required")
	case input.Password == "":
		return "", domain.Validationf("password is required")
	case input.FirstName == "":
		return "", domain.Validationf("first_name is required")
	case input.LastName == "":
		return "", domain.Validationf("last_name is required")
	case input.Phone == "":
		return "", domain.Validationf("phone is required")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		JoinAt:       time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	if err := s.UpdateLoginTimestamp(ctx, user.Username); err != nil {
		return "", err
	}
	return s.tokens.Issue(user.Username)
}

func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	if err := s.UpdateLoginTimestamp(ctx, username); err != nil {
		return "", err
	}
	return s.tokens.Issue(username)
}

// Authenticate reports whether the credential pair is valid. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up user: %w", err)
	}

	return s.hasher.Verify(password, user.PasswordHash), nil
}

func (s *userService) UpdateLoginTimestamp(ctx context.Context, username string) error {
	return s.users.UpdateLastLogin(ctx, username)
}

func (s *userService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.PublicProfile, error) {
	return s.users.ListAll(ctx)
}
