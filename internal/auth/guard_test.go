package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"messagely/internal/domain"
)

func guardMessage() domain.MessageDetail {
	return domain.MessageDetail{
		ID:       1,
		FromUser: domain.PublicProfile{Username: "alice"},
		ToUser:   domain.PublicProfile{Username: "bob"},
		Body:     "hi",
	}
}

func TestCanAccessProfile(t *testing.T) {
	t.Parallel()

	var g Guard
	assert.True(t, g.CanAccessProfile("alice", "alice"))
	assert.False(t, g.CanAccessProfile("bob", "alice"))
}

func TestCanViewMessage(t *testing.T) {
	t.Parallel()

	var g Guard
	msg := guardMessage()
	assert.True(t, g.CanViewMessage("alice", msg), "sender may view")
	assert.True(t, g.CanViewMessage("bob", msg), "recipient may view")
	assert.False(t, g.CanViewMessage("carol", msg), "third party denied")
}

func TestCanMarkRead(t *testing.T) {
	t.Parallel()

	var g Guard
	msg := guardMessage()
	assert.True(t, g.CanMarkRead("bob", msg), "recipient may mark read")
	assert.False(t, g.CanMarkRead("alice", msg), "sender denied even though they can view")
	assert.False(t, g.CanMarkRead("carol", msg))
}

func TestCheckSend(t *testing.T) {
	t.Parallel()

	var g Guard
	assert.NoError(t, g.CheckSend("alice", "bob", true))

	err := g.CheckSend("alice", "ghost", false)
	assert.True(t, domain.IsValidation(err), "unknown recipient is a validation error")

	err = g.CheckSend("alice", "alice", true)
	assert.True(t, domain.IsValidation(err), "self-send is a validation error")
}
