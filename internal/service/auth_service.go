package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 12

// ErrFederatedLoginDisabled is returned when no identity provider is configured
var ErrFederatedLoginDisabled = errors.New("federated login is not enabled")

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService handles password and federated authentication
type AuthService struct {
	userRepo   domain.UserRepository
	tokens     *TokenService
	authClient FirebaseAuthClient
	hashCost   int
}

// NewAuthService creates a new auth service. authClient may be nil.
func NewAuthService(userRepo domain.UserRepository, tokens *TokenService, authClient FirebaseAuthClient) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		authClient: authClient,
		hashCost:   passwordHashCost,
	}
}

// Register creates a password account and opens a session for it
func (s *AuthService) Register(ctx context.Context, name, email, password string, client ClientInfo) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.tokens.IssueSession(ctx, user, client)
}

// Login checks the password and opens a session
func (s *AuthService) Login(ctx context.Context, email, password string, client ClientInfo) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	// federated-only accounts have no password
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.tokens.IssueSession(ctx, user, client)
}

// LoginFederated verifies an identity-provider token. Unknown identities are
// linked to an existing account by email or registered as a new account.
func (s *AuthService) LoginFederated(ctx context.Context, idToken string, client ClientInfo) (*Session, bool, error) {
	if s.authClient == nil {
		return nil, false, ErrFederatedLoginDisabled
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, false, fmt.Errorf("%w: token carries no email", domain.ErrInvalidCredentials)
	}
	email = normalizeEmail(email)
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = email
	}

	user, err := s.userRepo.GetByFirebaseUID(ctx, token.UID)
	if err == nil {
		session, err := s.tokens.IssueSession(ctx, user, client)
		return session, false, err
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to fetch user: %w", err)
	}

	// an existing password account with the same email gets linked
	user, err = s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.FirebaseUID != "" && user.FirebaseUID != token.UID {
			return nil, false, fmt.Errorf("%w: email already linked to a different account", domain.ErrDuplicateEmail)
		}
		if err := s.userRepo.UpdateFirebaseUID(ctx, user.ID, token.UID); err != nil {
			return nil, false, fmt.Errorf("failed to link federated account: %w", err)
		}
		user.FirebaseUID = token.UID
		session, err := s.tokens.IssueSession(ctx, user, client)
		return session, false, err
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, fmt.Errorf("failed to fetch user: %w", err)
	}

	user = &domain.User{
		Name:        name,
		Email:       email,
		FirebaseUID: token.UID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	session, err := s.tokens.IssueSession(ctx, user, client)
	return session, true, err
}

// Profile returns the current user
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
