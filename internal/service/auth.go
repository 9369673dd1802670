package service

import (
	"context"
	"errors"
	"time"

	"github.com/micropost/micropost-go/internal/crypto"
	"github.com/micropost/micropost-go/internal/model"
	"github.com/micropost/micropost-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUserTaken          = errors.New("username or email already taken")
)

// AuthService handles registration and login.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new user account and issues a credential for it.
// A user already holding the username or the email yields ErrUserTaken.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	if req.Username == "" {
		return model.AuthResult{}, ErrUsernameRequired
	}
	if req.Email == "" {
		return model.AuthResult{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResult{}, ErrPasswordRequired
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return model.AuthResult{}, err
	}
	if exists {
		return model.AuthResult{}, ErrUserTaken
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResult{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique indexes catch the race the lookup above cannot.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.AuthResult{}, ErrUserTaken
		}
		return model.AuthResult{}, err
	}

	return s.issue(user)
}

// Login authenticates a user by username and password and issues a credential.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResult{}, ErrInvalidCredentials
		}
		return model.AuthResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResult{}, err
	}
	if !match {
		return model.AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (model.AuthResult, error) {
	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
