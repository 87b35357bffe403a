package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// MaxRequests allowed per window, per client IP.
	MaxRequests = 5
	// Window is the fixed counting window. Each allowed request pushes
	// the key's expiry forward, so the window slides with activity.
	Window = 60 * time.Second
)

// CounterStore is a per-key counter with store-managed expiry. Get
// returns 0 for absent or expired keys.
type CounterStore interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, count int, ttl time.Duration) error
}

type Result struct {
	Allowed    bool
	RetryAfter int // seconds, only meaningful when !Allowed
}

// LoginLimiter enforces the login endpoint's 5-requests-per-60s budget
// keyed by a hash of the client IP. Raw IPs are never stored.
type LoginLimiter struct {
	store CounterStore
}

func NewLoginLimiter(store CounterStore) *LoginLimiter {
	return &LoginLimiter{store: store}
}

func (l *LoginLimiter) Check(ctx context.Context, clientIP string) Result {
	// No identifiable caller: fail closed.
	if clientIP == "" {
		return Result{Allowed: false, RetryAfter: int(Window.Seconds())}
	}

	key := hashIP(clientIP)

	count, err := l.store.Get(ctx, key)
	if err != nil {
		// Counter unreadable: treat as zero, same as an expired window.
		logrus.WithError(err).Warn("rate limit counter read failed")
		count = 0
	}

	if count >= MaxRequests {
		return Result{Allowed: false, RetryAfter: int(Window.Seconds())}
	}

	if err := l.store.Set(ctx, key, count+1, Window); err != nil {
		logrus.WithError(err).Warn("rate limit counter write failed")
	}

	return Result{Allowed: true}
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
