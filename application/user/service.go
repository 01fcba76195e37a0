/*
Package user Application Layer - registration and login.

Deliberately thin: the checkout workflow only needs a resolved caller
identity and an operator flag. Passwords are hashed with bcrypt; sessions
are stateless HS256 bearer tokens carrying the user id.
*/
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ApplicationService user application service
type ApplicationService struct {
	userRepo  user.Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewApplicationService Create user application service
func NewApplicationService(userRepo user.Repository, jwtSecret string, tokenTTL time.Duration) *ApplicationService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &ApplicationService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a customer account. The email must be unused; the
// unique index on email backs this check against concurrent registrations.
func (s *ApplicationService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(req.Email, string(hash), req.Name)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, u.Email()); err == nil {
		return nil, user.NewEmailAlreadyExistsError(u.Email())
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	return s.convertToResponse(u), nil
}

// Login verifies credentials and issues a bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *ApplicationService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  s.convertToResponse(u),
	}, nil
}

// GetUser returns the user behind an id (used by auth middleware and /me)
func (s *ApplicationService) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(u), nil
}

// ResolveToken validates a bearer token and loads its user.
// Returns the domain aggregate so callers can check operator rights.
func (s *ApplicationService) ResolveToken(ctx context.Context, tokenString string) (*user.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, user.ErrInvalidCredentials
	}

	return s.userRepo.FindByID(ctx, claims.Subject)
}

// issueToken signs an HS256 token with the user id as subject
func (s *ApplicationService) issueToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *ApplicationService) convertToResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		UserType:  string(u.UserType()),
		CreatedAt: u.CreatedAt(),
	}
}

// normalizeEmail mirrors the normalization in user.NewUser
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
