package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mcq-practice-service/internal/domain"
)

// RegisterRequest is the signup contract.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login contract.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the issued token.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// Authenticator handles signup and login, locally or through the upstream API.
type Authenticator interface {
	Register(ctx context.Context, req RegisterRequest) (domain.User, error)
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
}

// UserRepository stores accounts. CreateUser returns domain.ErrEmailTaken for
// a duplicate email; FindByEmail returns domain.ErrUserNotFound.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Claims extends JWT registered claims with the account email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthService is the local Authenticator: bcrypt hashes and HS256 tokens.
type AuthService struct {
	users      UserRepository
	secret     []byte
	expiry     time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users UserRepository, secret string, expiry time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		expiry:     expiry,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.expiry)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResult{Token: token, ExpiresAt: expires, User: user}, nil
}

// ParseToken validates a token issued by Login.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
