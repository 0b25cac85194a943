package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Manager verifies credentials and mints/validates session tokens. Account
// lifecycle stays with the identity provider; this is only the session edge.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	userRepo repository.UserRepository
}

func NewManager(secret string, tokenTTL time.Duration, userRepo repository.UserRepository) *Manager {
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL, userRepo: userRepo}
}

// Login checks the password and returns a fresh token for the user.
func (m *Manager) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := m.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := m.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken mints an HS256 token whose subject is the user id.
func (m *Manager) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token and loads the user it names.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return m.userRepo.GetByID(ctx, claims.Subject)
}

// HashPassword is used by seeding and tests to store credentials the way
// Login expects them.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
