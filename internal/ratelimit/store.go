package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"jobboard/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "jobboard:ratelimit:"
	redisLimit = 500 * time.Millisecond
)

// NewRedisClient accepts either host:port or a redis:// URL.
func NewRedisClient(addr, password string, db int, log *zap.Logger) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if opts, err := redis.ParseURL(addr); err == nil {
			if password == "" {
				password = opts.Password
			}
			parsedAddr = opts.Addr
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		log.Info("Redis connection established", zap.String("addr", parsedAddr))
	}
	return client
}

// Store is a fixed-window echo RateLimiterStore backed by redis INCR/EXPIRE.
// It fails open: when redis is unreachable requests are allowed.
type Store struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewStore(client *redis.Client, limit int, window time.Duration, log *zap.Logger) *Store {
	return &Store{client: client, limit: limit, window: window, log: log}
}

func (s *Store) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisLimit)
	defer cancel()

	key := keyPrefix + identifier
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		s.log.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
		return true, nil
	}

	// A key without expiry opens a window, including one left behind by a failed EXPIRE.
	if ttl.Val() < 0 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.log.Warn("Failed to set rate limit window", zap.String("key", key), zap.Error(err))
		}
	}

	return incr.Val() <= int64(s.limit), nil
}

// IPExtractor reads the client address from the socket. Forwarded headers are
// honoured only when the direct peer is one of trustedProxies (CIDR ranges).
func IPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy range %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...), nil
}

// Middleware limits requests per client IP as reported by the echo
// instance's IPExtractor; see IPExtractor.
func (s *Store) Middleware() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: s,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if c.Echo().IPExtractor == nil {
				return echo.ExtractIPDirect()(c.Request()), nil
			}
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.NewAppError(common.KindRateLimit, http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return common.NewAppError(common.KindRateLimit, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests, try again in %s", s.window))
		},
	})
}
