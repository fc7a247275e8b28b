package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// TokenService issues access JWTs and rotates opaque refresh tokens
type TokenService struct {
	jwtConfig        config.JWTConfig
	refreshTokenRepo domain.RefreshTokenRepository
	userRepo         domain.UserRepository
	now              func() time.Time
}

func NewTokenService(
	jwtConfig config.JWTConfig,
	refreshTokenRepo domain.RefreshTokenRepository,
	userRepo domain.UserRepository,
) *TokenService {
	return &TokenService{
		jwtConfig:        jwtConfig,
		refreshTokenRepo: refreshTokenRepo,
		userRepo:         userRepo,
		now:              time.Now,
	}
}

// Session is what a client stores after login. The field names follow the
// shape the web client already persists.
type Session struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// ClientInfo is recorded alongside each refresh token
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// IssueSession starts a new login: an access token plus the first refresh
// token of a fresh family.
func (s *TokenService) IssueSession(ctx context.Context, user *domain.User, client ClientInfo) (*Session, error) {
	family := ulid.MustNew(ulid.Timestamp(s.now()), rand.Reader).String()
	return s.session(ctx, user, family, "", client)
}

// Refresh swaps a live refresh token for a new session in the same family.
// A token that was already rotated is treated as stolen: the whole family is
// revoked and both holders have to log in again.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*Session, error) {
	hash := hashToken(refreshToken)
	now := s.now()

	stored, err := s.refreshTokenRepo.ByHash(ctx, hash)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	if stored.Rotated() {
		if err := s.refreshTokenRepo.RevokeFamily(ctx, stored.Family, now); err != nil {
			return nil, fmt.Errorf("failed to revoke reused token family: %w", err)
		}
		return nil, domain.ErrInvalidRefreshToken
	}
	if !stored.Active(now) {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.session(ctx, user, stored.Family, hash, client)
}

// Revoke ends the login the refresh token belongs to. Unknown tokens are ignored.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	stored, err := s.refreshTokenRepo.ByHash(ctx, hashToken(refreshToken))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find refresh token: %w", err)
	}
	return s.refreshTokenRepo.RevokeFamily(ctx, stored.Family, s.now())
}

// RevokeAll logs the user out of every device
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.refreshTokenRepo.RevokeUser(ctx, userID, s.now())
}

// session signs an access token and stores the next refresh token of family.
// When previous is set it is marked rotated first; losing that race means
// another request already used it.
func (s *TokenService) session(ctx context.Context, user *domain.User, family, previous string, client ClientInfo) (*Session, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	refreshToken := hex.EncodeToString(raw)
	hash := hashToken(refreshToken)
	now := s.now()

	if previous != "" {
		ok, err := s.refreshTokenRepo.MarkRotated(ctx, previous, hash, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			if err := s.refreshTokenRepo.RevokeFamily(ctx, family, now); err != nil {
				return nil, fmt.Errorf("failed to revoke reused token family: %w", err)
			}
			return nil, domain.ErrInvalidRefreshToken
		}
	}

	if err := s.refreshTokenRepo.Save(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		Family:    family,
		TokenHash: hash,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: now.Add(s.jwtConfig.RefreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &Session{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtConfig.AccessTTL.Seconds()),
	}, nil
}

// ParseAccessToken validates an HS256 access token and returns its claims
func (s *TokenService) ParseAccessToken(tokenString string) (*domain.AccessClaims, error) {
	return ParseAccessToken(tokenString, s.jwtConfig.Secret)
}

func (s *TokenService) signAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := domain.AccessClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// ParseAccessToken validates tokenString against secret. Only HMAC signing is accepted.
func ParseAccessToken(tokenString, secret string) (*domain.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.AccessClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
