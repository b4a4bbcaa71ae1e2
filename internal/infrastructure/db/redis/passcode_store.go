package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// passcodeScriptSource deletes the key only when it holds the submitted code, so a
// code can be redeemed at most once even under concurrent attempts.
const passcodeScriptSource = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var consumeScript = redis.NewScript(passcodeScriptSource)

// PasscodeStore keeps recovery passcodes in Redis with a TTL.
// Key format: <prefix>passcode:<user_id>
type PasscodeStore struct {
	client *redis.Client
	prefix string
}

var _ ports.PasscodeStore = (*PasscodeStore)(nil)

// NewPasscodeStore creates a PasscodeStore wrapping the given Redis client.
// prefix is prepended to every key; it may be empty.
func NewPasscodeStore(client *redis.Client, prefix string) *PasscodeStore {
	return &PasscodeStore{client: client, prefix: prefix}
}

// Save replaces any live passcode of userID.
func (s *PasscodeStore) Save(ctx context.Context, userID, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), code, ttl).Err(); err != nil {
		return fmt.Errorf("save passcode: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// Consume reports whether code matched the live passcode, deleting it on a match.
func (s *PasscodeStore) Consume(ctx context.Context, userID, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{s.key(userID)}, code).Int64()
	if err != nil {
		return false, fmt.Errorf("consume passcode: %w: %w", domain.ErrUnavailable, err)
	}
	return n == 1, nil
}

func (s *PasscodeStore) key(userID string) string {
	return fmt.Sprintf("%spasscode:%s", s.prefix, userID)
}
