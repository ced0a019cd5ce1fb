package repository

import (
	"context"

	"messagely/internal/domain"
)

// MessageRepository defines persistence operations for Message records.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, from, to, body string) (*domain.Message, error)
	// GetByID returns the message joined with both participant profiles.
	GetByID(ctx context.Context, id int64) (*domain.MessageDetail, error)
	// MarkRead stamps read_at and returns the updated id/read_at pair. Marking
	// an already-read message simply re-stamps it.
	MarkRead(ctx context.Context, id int64) (*domain.Message, error)
	// ListFrom returns messages sent by username, each with the recipient profile.
	ListFrom(ctx context.Context, username string) ([]domain.MessageDetail, error)
	// ListTo returns messages received by username, each with the sender profile.
	ListTo(ctx context.Context, username string) ([]domain.MessageDetail, error)
}
