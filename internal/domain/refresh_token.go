package domain

import (
	"context"
	"time"
)

// RefreshToken is one link in a login session's rotation chain. Only the
// SHA-256 of the opaque token is stored. Every token issued by rotating the
// same login shares a Family.
type RefreshToken struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	UserID     string     `bson:"user_id" json:"userId"`
	Family     string     `bson:"family" json:"family"`
	TokenHash  string     `bson:"token_hash" json:"-"`
	UserAgent  string     `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	IPAddress  string     `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`
	ExpiresAt  time.Time  `bson:"expires_at" json:"expiresAt"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	RevokedAt  *time.Time `bson:"revoked_at,omitempty" json:"revokedAt,omitempty"`
	ReplacedBy string     `bson:"replaced_by,omitempty" json:"-"`
}

// Active reports whether the token can still be exchanged at now
func (r *RefreshToken) Active(now time.Time) bool {
	return r.RevokedAt == nil && now.Before(r.ExpiresAt)
}

// Rotated reports whether the token was already exchanged for a successor.
// Presenting a rotated token again means it leaked.
func (r *RefreshToken) Rotated() bool {
	return r.ReplacedBy != ""
}

type RefreshTokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) error
	// ByHash returns ErrNotFound for unknown hashes. Revoked tokens are returned.
	ByHash(ctx context.Context, hash string) (*RefreshToken, error)
	// MarkRotated revokes hash in favour of replacedBy. It reports false when
	// the token was no longer live, e.g. a concurrent refresh won.
	MarkRotated(ctx context.Context, hash, replacedBy string, at time.Time) (bool, error)
	RevokeFamily(ctx context.Context, family string, at time.Time) error
	RevokeUser(ctx context.Context, userID string, at time.Time) error
}
