package auth

import "messagely/internal/domain"

// Guard holds the per-request authorization rules. All checks are pure; the
// caller supplies the already-loaded message record.
type Guard struct{}

// CanAccessProfile allows a user to act only on their own profile.
func (Guard) CanAccessProfile(actingUser, targetUsername string) bool {
	return actingUser == targetUsername
}

// CanViewMessage allows either participant of a message to view it.
func (Guard) CanViewMessage(actingUser string, msg domain.MessageDetail) bool {
	return msg.Participant(actingUser)
}

// CanMarkRead allows only the recipient to mark a message read. The sender can
// view the message but must not be able to stamp the read receipt.
func (Guard) CanMarkRead(actingUser string, msg domain.MessageDetail) bool {
	return actingUser == msg.ToUser.Username
}

// CheckSend validates the recipient of an outgoing message. recipientExists is
// the result of a Credential Store lookup done by the caller.
func (Guard) CheckSend(fromUser, toUsername string, recipientExists bool) error {
	if !recipientExists {
		return domain.Validationf("unknown recipient %q", toUsername)
	}
	if fromUser == toUsername {
		return domain.Validationf("cannot send a message to yourself")
	}
	return nil
}
