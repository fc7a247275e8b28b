package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Cached stats views. Each is stored under stats:{view}:{userID}.
const (
	statsViewDashboard = "dashboard"
	statsViewQuick     = "quick"
)

var statsViews = []string{statsViewDashboard, statsViewQuick}

var ErrCacheMiss = errors.New("cache miss")

// RedisCacheRepository caches computed per-user stats as JSON in Redis.
// Every call is traced as a child of the request span.
type RedisCacheRepository struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
		tracer: otel.Tracer("embody/redis-cache"),
	}
}

func statsKey(view, userID string) string {
	return "stats:" + view + ":" + userID
}

func (r *RedisCacheRepository) GetDashboardStats(ctx context.Context, userID string, dest interface{}) error {
	return r.load(ctx, statsKey(statsViewDashboard, userID), dest)
}

func (r *RedisCacheRepository) SetDashboardStats(ctx context.Context, userID string, stats interface{}, ttl time.Duration) error {
	return r.store(ctx, statsKey(statsViewDashboard, userID), stats, ttl)
}

func (r *RedisCacheRepository) GetQuickStats(ctx context.Context, userID string, dest interface{}) error {
	return r.load(ctx, statsKey(statsViewQuick, userID), dest)
}

func (r *RedisCacheRepository) SetQuickStats(ctx context.Context, userID string, stats interface{}, ttl time.Duration) error {
	return r.store(ctx, statsKey(statsViewQuick, userID), stats, ttl)
}

// InvalidateUserStats drops every cached view of the user in one round trip
func (r *RedisCacheRepository) InvalidateUserStats(ctx context.Context, userID string) error {
	keys := make([]string, len(statsViews))
	for i, view := range statsViews {
		keys[i] = statsKey(view, userID)
	}
	return r.traced(ctx, "cache.invalidate", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("enduser.id", userID), attribute.Int("cache.key_count", len(keys)))
		return r.client.Del(ctx, keys...).Err()
	})
}

// load decodes the JSON at key into dest. A missing key is ErrCacheMiss.
func (r *RedisCacheRepository) load(ctx context.Context, key string, dest interface{}) error {
	return r.traced(ctx, "cache.load", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("cache.key", key))

		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			span.SetAttributes(attribute.Bool("cache.hit", false))
			return ErrCacheMiss
		}
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Bool("cache.hit", true))

		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	})
}

func (r *RedisCacheRepository) store(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.traced(ctx, "cache.store", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("cache.key", key), attribute.Int64("cache.ttl_seconds", int64(ttl.Seconds())))

		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		return r.client.Set(ctx, key, data, ttl).Err()
	})
}

// traced runs fn inside a span named op. Errors other than a miss are recorded and wrapped.
func (r *RedisCacheRepository) traced(ctx context.Context, op string, fn func(context.Context, trace.Span) error) error {
	ctx, span := r.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := fn(ctx, span)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		return err
	}
	span.RecordError(err)
	return fmt.Errorf("redis %s: %w", op, err)
}
