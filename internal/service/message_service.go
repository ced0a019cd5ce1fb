package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"messagely/internal/auth"
	"messagely/internal/domain"
	"messagely/internal/repository"
)

// MessageService coordinates message operations and enforces the
// participant-based access rules. Every accessor takes the acting user and
// denies before any message content is returned.
type MessageService interface {
	Send(ctx context.Context, fromUser, toUsername, body string) (*domain.Message, error)
	Get(ctx context.Context, actingUser string, id int64) (*domain.MessageDetail, error)
	MarkRead(ctx context.Context, actingUser string, id int64) (*domain.Message, error)
	ListFrom(ctx context.Context, username string) ([]domain.MessageDetail, error)
	ListTo(ctx context.Context, username string) ([]domain.MessageDetail, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	guard    auth.Guard
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, guard auth.Guard) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		guard:    guard,
	}
}

func (s *messageService) Send(ctx context.Context, fromUser, toUsername, body string) (*domain.Message, error) {
	toUsername = strings.TrimSpace(toUsername)
	if toUsername == "" {
		return nil, domain.Validationf("to_username is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.Validationf("body is required")
	}

	exists, err := s.recipientExists(ctx, toUsername)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckSend(fromUser, toUsername, exists); err != nil {
		return nil, err
	}

	return s.messages.Create(ctx, fromUser, toUsername, body)
}

func (s *messageService) Get(ctx context.Context, actingUser string, id int64) (*domain.MessageDetail, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanViewMessage(actingUser, *msg) {
		return nil, domain.ErrUnauthorized
	}
	return msg, nil
}

func (s *messageService) MarkRead(ctx context.Context, actingUser string, id int64) (*domain.Message, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanMarkRead(actingUser, *msg) {
		return nil, domain.ErrUnauthorized
	}
	return s.messages.MarkRead(ctx, id)
}

func (s *messageService) ListFrom(ctx context.Context, username string) ([]domain.MessageDetail, error) {
	return s.messages.ListFrom(ctx, username)
}

func (s *messageService) ListTo(ctx context.Context, username string) ([]domain.MessageDetail, error) {
	return s.messages.ListTo(ctx, username)
}

func (s *messageService) recipientExists(ctx context.Context, username string) (bool, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up recipient: %w", err)
	}
	return true, nil
}
