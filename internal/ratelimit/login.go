package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/framehaus/studioflow/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyLogin = "login:%s"

// LoginLimiter throttles login attempts per client address. A nil limiter
// (redis not configured) allows everything.
type LoginLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewLoginLimiter(cfg config.Config) *LoginLimiter {
	addr := strings.TrimSpace(cfg.RateLimit.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RateLimit.RedisPassword),
		DB:       cfg.RateLimit.RedisDB,
	})

	rate := cfg.RateLimit.LoginRate
	if rate <= 0 {
		rate = 0.5
	}
	burst := cfg.RateLimit.LoginBurst
	if burst <= 0 {
		burst = 5
	}

	return &LoginLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}
}

// Allow reports whether another login attempt from addr may proceed and, if
// not, how long the caller should wait.
func (l *LoginLimiter) Allow(ctx context.Context, addr string) (bool, time.Duration, error) {
	if l == nil {
		return true, 0, nil
	}

	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyLogin, addr), l.rate, l.burst)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed, res.RetryAfter, nil
}
