package repository

import (
	"context"

	"messagely/internal/domain"
)

// UserRepository defines persistence operations for User records.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, username string) error
	ListAll(ctx context.Context) ([]domain.PublicProfile, error)
}
