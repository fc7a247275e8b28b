package service

import (
	"context"
	"time"
)

// StatsCache stores per-user computed stats. Implemented by repository.RedisCacheRepository.
type StatsCache interface {
	GetDashboardStats(ctx context.Context, userID string, dest interface{}) error
	SetDashboardStats(ctx context.Context, userID string, stats interface{}, ttl time.Duration) error
	GetQuickStats(ctx context.Context, userID string, dest interface{}) error
	SetQuickStats(ctx context.Context, userID string, stats interface{}, ttl time.Duration) error
	InvalidateUserStats(ctx context.Context, userID string) error
}
