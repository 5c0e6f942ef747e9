package redisinfra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-notes-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// admitScript runs the whole admission check atomically: an existing
// block key rejects outright; otherwise the window counter is
// incremented, given its TTL on first increment, and escalated to a
// block when the threshold is exceeded. Two concurrent requests can
// never both observe count=1 and skip the expiry.
const admitScript = `
if redis.call("EXISTS", KEYS[2]) == 1 then
  return -1
end
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if count > tonumber(ARGV[2]) then
  redis.call("SET", KEYS[2], "1", "EX", ARGV[3])
  return -1
end
return count
`

// Evaler is the slice of the redis client the limiter needs.
type Evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Limiter enforces the per-identifier OTP request policy: at most max
// requests per window; exceeding it blocks the identifier for blockFor,
// regardless of the window counter resetting in the meantime.
type Limiter struct {
	client   Evaler
	window   time.Duration
	max      int
	blockFor time.Duration
}

func NewLimiter(client Evaler, window time.Duration, max int, blockFor time.Duration) *Limiter {
	return &Limiter{client: client, window: window, max: max, blockFor: blockFor}
}

// Admit reports whether a request for identifier may proceed. Returns
// domain.ErrRateLimited when over policy and domain.ErrUnavailable when
// the counting store cannot be reached (fail closed — an unreachable
// store must never mean unlimited requests).
func (l *Limiter) Admit(ctx context.Context, identifier string) error {
	key := strings.ToLower(strings.TrimSpace(identifier))
	if key == "" {
		return fmt.Errorf("empty rate limit identifier: %w", domain.ErrBadRequest)
	}
	minuteKey := "otp:" + key + ":minute"
	blockKey := "otp:" + key + ":block"

	count, err := l.client.Eval(ctx, admitScript,
		[]string{minuteKey, blockKey},
		int(l.window.Seconds()), l.max, int(l.blockFor.Seconds()),
	).Int()
	if err != nil {
		return fmt.Errorf("rate limit store: %v: %w", err, domain.ErrUnavailable)
	}
	if count < 0 {
		return fmt.Errorf("too many OTP requests: %w", domain.ErrRateLimited)
	}
	return nil
}
