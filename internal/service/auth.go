package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/placehirex/placement-backend/internal/events"
	"github.com/placehirex/placement-backend/internal/hash"
	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/models"
	"github.com/placehirex/placement-backend/internal/repo"
	"github.com/placehirex/placement-backend/internal/tokens"
)

var (
	ErrValidation = errors.New("email and password are required")
	ErrConflict   = errors.New("email is already registered")
	// ErrInvalidCredentials deliberately covers unknown email, wrong
	// password and disabled accounts with one message.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	Repo     *repo.GormRepo
	Codec    *tokens.Codec
	Producer *events.Producer
}

type AuthResult struct {
	Token     string
	TokenType string
	ExpiresIn int64
	Role      string
	Email     string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a STUDENT identity and immediately issues a token
// for it, so registering doubles as the first login.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, ErrValidation
	}

	exists, err := s.Repo.UserExists(ctx, normalized)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		l.Warn("register_error", "status", 409, "reason", "email already registered")
		return nil, ErrConflict
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &models.AppUser{
		Email:        normalized,
		PasswordHash: pwHash,
		Role:         string(tokens.RoleStudent),
		Enabled:      true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, ErrConflict
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	result, err := s.issueToken(normalized, tokens.RoleStudent)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	event := map[string]any{
		"type":  "user_registered",
		"email": user.Email,
		"role":  user.Role,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.Email, event); err != nil {
		l.Warn("kafka publish failed", "error", err)
	}

	l.Info("register_successful", "email", user.Email)
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401)
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.Enabled || !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401)
		return nil, ErrInvalidCredentials
	}

	role, err := tokens.ParseRole(user.Role)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "stored role is unknown", "role", user.Role)
		return nil, fmt.Errorf("login: unknown role %q", user.Role)
	}

	result, err := s.issueToken(user.Email, role)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	l.Info("login_successful", "email", user.Email)
	return result, nil
}

func (s *AuthService) issueToken(email string, role tokens.Role) (*AuthResult, error) {
	token, err := s.Codec.Issue(email, role, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.Codec.TTL().Milliseconds(),
		Role:      string(role),
		Email:     email,
	}, nil
}
