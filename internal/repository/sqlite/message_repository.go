package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
)

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_username TEXT NOT NULL REFERENCES users(username),
	to_username TEXT NOT NULL REFERENCES users(username),
	body TEXT NOT NULL,
	sent_at DATETIME NOT NULL,
	read_at DATETIME
);
`

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, from, to, body string) (*domain.Message, error) {
	msg := &domain.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO messages (from_username, to_username, body, sent_at)
VALUES (?, ?, ?, ?)`,
		msg.FromUsername,
		msg.ToUsername,
		msg.Body,
		msg.SentAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message last insert id: %w", err)
	}
	msg.ID = id
	return msg, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.MessageDetail, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT
	m.id, m.body, m.sent_at, m.read_at,
	fu.username, fu.first_name, fu.last_name, fu.phone,
	tu.username, tu.first_name, tu.last_name, tu.phone
FROM messages m
JOIN users fu ON m.from_username = fu.username
JOIN users tu ON m.to_username = tu.username
WHERE m.id = ?`,
		id,
	)

	var msg domain.MessageDetail
	if err := row.Scan(
		&msg.ID,
		&msg.Body,
		&msg.SentAt,
		&msg.ReadAt,
		&msg.FromUser.Username,
		&msg.FromUser.FirstName,
		&msg.FromUser.LastName,
		&msg.FromUser.Phone,
		&msg.ToUser.Username,
		&msg.ToUser.FirstName,
		&msg.ToUser.LastName,
		&msg.ToUser.Phone,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	readAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE messages SET read_at = ? WHERE id = ?`,
		readAt,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.Message{ID: id, ReadAt: &readAt}, nil
}

func (r *MessageRepository) ListFrom(ctx context.Context, username string) ([]domain.MessageDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT
	m.id, m.body, m.sent_at, m.read_at,
	tu.username, tu.first_name, tu.last_name, tu.phone
FROM messages m
JOIN users tu ON m.to_username = tu.username
WHERE m.from_username = ?
ORDER BY m.id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages from %s: %w", username, err)
	}
	defer rows.Close()

	return scanMessageList(rows, func(msg *domain.MessageDetail) *domain.PublicProfile {
		msg.FromUser.Username = username
		return &msg.ToUser
	})
}

func (r *MessageRepository) ListTo(ctx context.Context, username string) ([]domain.MessageDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT
	m.id, m.body, m.sent_at, m.read_at,
	fu.username, fu.first_name, fu.last_name, fu.phone
FROM messages m
JOIN users fu ON m.from_username = fu.username
WHERE m.to_username = ?
ORDER BY m.id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages to %s: %w", username, err)
	}
	defer rows.Close()

	return scanMessageList(rows, func(msg *domain.MessageDetail) *domain.PublicProfile {
		msg.ToUser.Username = username
		return &msg.FromUser
	})
}

// scanMessageList scans rows holding a message plus one counterparty profile;
// pick returns the profile slot the row's counterparty columns fill.
func scanMessageList(rows *sql.Rows, pick func(*domain.MessageDetail) *domain.PublicProfile) ([]domain.MessageDetail, error) {
	var messages []domain.MessageDetail
	for rows.Next() {
		var msg domain.MessageDetail
		other := pick(&msg)
		if err := rows.Scan(
			&msg.ID,
			&msg.Body,
			&msg.SentAt,
			&msg.ReadAt,
			&other.Username,
			&other.FirstName,
			&other.LastName,
			&other.Phone,
		); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
