package service

import (
	"context"
	"strings"
	"time"

	"github.com/pdfbrief/pdfbrief/internal/model"
	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
	"github.com/pdfbrief/pdfbrief/internal/pkg/jwt"
	"github.com/pdfbrief/pdfbrief/internal/pkg/password"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

type AuthService struct {
	users      UserStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users UserStore, secret []byte, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a user with a bcrypt-hashed password and issues the
// initial refresh/access token pair. A taken username is ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, plainPassword string) (*model.User, *jwt.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return nil, nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().Unix()
	user := &model.User{
		ID:           newID(),
		Username:     username,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	pair, err := jwt.GeneratePair(user.ID, user.Username, s.jwtSecret, s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*model.User, *jwt.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return nil, nil, appErr.ErrInvalid
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, nil, appErr.ErrUnauthorized
	}
	pair, err := jwt.GeneratePair(user.ID, user.Username, s.jwtSecret, s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := jwt.ParseToken(refreshToken, s.jwtSecret)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return "", appErr.ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateAccessToken(user.ID, user.Username, s.jwtSecret, s.accessTTL)
}
