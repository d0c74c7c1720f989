package auth

import (
	"context"
	"errors"
	"time"

	"club-sync/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so the response does not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInactiveAccount    = errors.New("account is deactivated")
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *Admin, error)
	Register(ctx context.Context, input RegisterInput) (*Admin, error)
	GetAdmin(ctx context.Context, id string) (*Admin, error)
}

type AuthServiceImpl struct {
	repo   AdminRepository
	logger *zap.Logger
}

func NewAuthService(repo AdminRepository, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *Admin, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return "", nil, ErrInactiveAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", admin.Username))
	return token, admin, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, input RegisterInput) (*Admin, error) {
	if input.Username == "" || input.Password == "" {
		return nil, errors.New("username and password are required")
	}

	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &Admin{
		Username:       input.Username,
		Email:          input.Email,
		FullName:       input.FullName,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin registered", zap.String("username", admin.Username))
	return admin, nil
}

func (s *AuthServiceImpl) GetAdmin(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}
