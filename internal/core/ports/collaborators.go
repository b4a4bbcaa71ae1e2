package ports

import (
	"context"
	"time"
)

// PasswordHasher is the one-way salted hash primitive for credentials.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	// Compare returns nil when secret matches hash.
	Compare(hash, secret string) error
}

// PasscodeStore keeps at most one live recovery passcode per user.
type PasscodeStore interface {
	// Save replaces any previous passcode for userID.
	Save(ctx context.Context, userID, code string, ttl time.Duration) error
	// Consume deletes the passcode and reports true only when code matches
	// the live value.
	Consume(ctx context.Context, userID, code string) (bool, error)
}

// Channel identifies a delivery medium.
type Channel string

const ChannelEmail Channel = "email"

// Notification is a single outbound message.
type Notification struct {
	Channel Channel
	To      string
	Subject string
	Text    string
	HTML    string
}

// Notifier hands messages to an external delivery service. Delivery is
// fire-and-forget: an error means the message could not be accepted.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
