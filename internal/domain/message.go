package domain

import "time"

// Message is a single text message between two users. ReadAt is nil until the
// recipient marks the message read.
type Message struct {
	ID           int64
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
}

// MessageDetail is a message joined with both participant profiles.
type MessageDetail struct {
	ID       int64
	FromUser PublicProfile
	ToUser   PublicProfile
	Body     string
	SentAt   time.Time
	ReadAt   *time.Time
}

// Participant reports whether username is the sender or the recipient.
func (m MessageDetail) Participant(username string) bool {
	return m.FromUser.Username == username || m.ToUser.Username == username
}
