package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTConfig = config.JWTConfig{
	Secret:     "test-secret-0123456789",
	AccessTTL:  time.Hour,
	RefreshTTL: 24 * time.Hour,
}

type fakeFirebase struct {
	tokens map[string]*auth.Token
}

func (f *fakeFirebase) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token verification failed")
}

func newTestAuth(firebase FirebaseAuthClient) (*AuthService, *TokenService, *fakeUserRepo) {
	users := newFakeUserRepo()
	tokens := NewTokenService(testJWTConfig, newFakeRefreshTokenRepo(), users)
	svc := NewAuthService(users, tokens, firebase)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens, users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens, users := newTestAuth(nil)

	session, err := svc.Register(ctx, " Ada ", "Ada@Example.com", "secret1", ClientInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "Ada", session.Name)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, int64(3600), session.ExpiresIn)

	stored, err := users.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	claims, err := tokens.ParseAccessToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Other", "ada@example.com", "secret2", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("login", func(t *testing.T) {
		got, err := svc.Login(ctx, "ADA@example.com", "secret1", ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@example.com", "nope", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "secret1", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _ := newTestAuth(nil)

	session, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1", ClientInfo{UserAgent: "test"})
	require.NoError(t, err)

	rotated, err := tokens.Refresh(ctx, session.RefreshToken, ClientInfo{})
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, session.ID, rotated.ID)

	next, err := tokens.Refresh(ctx, rotated.RefreshToken, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, tokens.Revoke(ctx, next.RefreshToken))
	_, err = tokens.Refresh(ctx, next.RefreshToken, ClientInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	_, err = tokens.Refresh(ctx, "never-issued", ClientInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	assert.NoError(t, tokens.Revoke(ctx, "never-issued"))
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _ := newTestAuth(nil)

	phone, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1", ClientInfo{UserAgent: "phone"})
	require.NoError(t, err)
	laptop, err := svc.Login(ctx, "ada@example.com", "secret1", ClientInfo{UserAgent: "laptop"})
	require.NoError(t, err)

	rotated, err := tokens.Refresh(ctx, phone.RefreshToken, ClientInfo{})
	require.NoError(t, err)

	// replaying the rotated token kills the successor too
	_, err = tokens.Refresh(ctx, phone.RefreshToken, ClientInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	_, err = tokens.Refresh(ctx, rotated.RefreshToken, ClientInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	// other logins are untouched
	_, err = tokens.Refresh(ctx, laptop.RefreshToken, ClientInfo{})
	require.NoError(t, err)
}

func TestRevokeAllEndsEveryLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _ := newTestAuth(nil)

	first, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1", ClientInfo{})
	require.NoError(t, err)
	second, err := svc.Login(ctx, "ada@example.com", "secret1", ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, tokens.RevokeAll(ctx, first.ID))
	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := tokens.Refresh(ctx, token, ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	}
}

func TestParseAccessTokenRejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuth(nil)

	session, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1", ClientInfo{})
	require.NoError(t, err)

	_, err = ParseAccessToken(session.Token, "another-secret-0123456789")
	assert.Error(t, err)
}

func TestLoginFederated(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without a provider", func(t *testing.T) {
		svc, _, _ := newTestAuth(nil)
		_, _, err := svc.LoginFederated(ctx, "anything", ClientInfo{})
		assert.ErrorIs(t, err, ErrFederatedLoginDisabled)
	})

	firebase := &fakeFirebase{tokens: map[string]*auth.Token{
		"new-user":  {UID: "fb-1", Claims: map[string]interface{}{"email": "new@example.com", "name": "Newcomer"}},
		"link-user": {UID: "fb-2", Claims: map[string]interface{}{"email": "ada@example.com"}},
		"no-email":  {UID: "fb-3", Claims: map[string]interface{}{}},
	}}
	svc, _, users := newTestAuth(firebase)

	t.Run("registers unknown identity", func(t *testing.T) {
		session, created, err := svc.LoginFederated(ctx, "new-user", ClientInfo{})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Newcomer", session.Name)

		again, created, err := svc.LoginFederated(ctx, "new-user", ClientInfo{})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, session.ID, again.ID)
	})

	t.Run("links existing password account", func(t *testing.T) {
		registered, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1", ClientInfo{})
		require.NoError(t, err)

		session, created, err := svc.LoginFederated(ctx, "link-user", ClientInfo{})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, registered.ID, session.ID)

		user, err := users.GetByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "fb-2", user.FirebaseUID)
	})

	t.Run("rejects bad tokens", func(t *testing.T) {
		_, _, err := svc.LoginFederated(ctx, "forged", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, _, err = svc.LoginFederated(ctx, "no-email", ClientInfo{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
