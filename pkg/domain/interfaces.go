package domain

import (
	"context"
	"time"

	"github.com/jordanlanch/salespipe/ent"
)

// EventEmitter broadcasts realtime events to connected clients
type EventEmitter interface {
	Emit(event string, payload interface{})
}

// Mailer defines outbound notification email operations
type Mailer interface {
	SendLeadAssignmentEmail(toEmail, toName string, l *ent.Lead) error
	SendActivityReminderEmail(toEmail, toName string, a *ent.Activity, l *ent.Lead) error
	SendWelcomeEmail(toEmail, toName string) error
}

// CacheRepository defines caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// TokenBlacklist defines JWT token blacklist operations
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiration time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
