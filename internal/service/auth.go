package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration, login, password changes, and
// session token operations. Tokens are stateless HS256 JWTs with a single
// TTL policy for every issuance path; there is no revocation list, so a
// token stays valid until natural expiry.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Signup creates a new user account after validating inputs and returns the
// user together with a freshly issued session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if len(name) < 3 {
		return nil, "", fmt.Errorf("%w: name must be at least 3 characters", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: enter a valid email", domain.ErrInvalidInput)
	}
	if len(password) < 5 {
		return nil, "", fmt.Errorf("%w: password must be at least 5 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// email and wrong password produce the same error so callers cannot
// enumerate accounts. Login intentionally only requires a non-blank
// password; the length rule applies at signup.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: enter a valid email", domain.ErrInvalidInput)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password cannot be blank", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// ChangePassword re-hashes and overwrites the password for the authenticated
// user. The submitted email must match the caller's own account.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, email, newPassword string) error {
	if len(newPassword) < 5 {
		return fmt.Errorf("%w: new password must be at least 5 characters", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user.Email != email {
		return domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// IssueToken produces a signed token encoding the user id, issue time, and
// expiry.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates the signature and expiry of a token and returns the
// user id it was issued to. Expired tokens yield ErrTokenExpired; anything
// structurally or cryptographically wrong yields ErrTokenMalformed.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrTokenMalformed
	}
	if !token.Valid {
		return 0, domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrTokenMalformed
	}

	return userID, nil
}
