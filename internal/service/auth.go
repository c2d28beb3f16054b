package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"schemacat/internal/domain"
)

const minPasswordLength = 8

// AuthService handles registration, login, and token verification. Tokens
// are HS256 JWTs with the user ID as subject.
type AuthService struct {
	users  domain.UserRepository
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, secret string, ttl time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, logger: logger}
}

// Register creates a user account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrValidation("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrValidation("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, domain.CreateUserRequest{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies credentials and issues a token. Wrong email, wrong
// password, and deactivated account all produce the same unauthorized error
// so the response does not leak which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, domain.ErrUnauthorized("invalid credentials")
	}
	if !u.IsActive {
		return "", nil, domain.ErrUnauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrUnauthorized("invalid credentials")
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn("recording last login failed", "user_id", u.ID, "error", err)
	}
	return token, u, nil
}

// UpdateProfile changes a user's display name or password. A password change
// re-hashes; the old password is not required because the caller already
// holds a valid token.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, name, password *string) (*domain.User, error) {
	req := domain.UpdateUserRequest{Name: name}
	if password != nil {
		if len(*password) < minPasswordLength {
			return nil, domain.ErrValidation("password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		req.PasswordHash = &h
	}
	return s.users.Update(ctx, userID, req)
}

// IssueToken signs a token for the user.
func (s *AuthService) IssueToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken validates a token and returns the account it belongs to.
// Tokens of deactivated accounts are rejected even before expiry.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized("token has no subject")
	}

	u, err := s.users.GetByID(ctx, sub)
	if err != nil {
		return nil, domain.ErrUnauthorized("unknown account")
	}
	if !u.IsActive {
		return nil, domain.ErrUnauthorized("account is deactivated")
	}
	return u, nil
}
