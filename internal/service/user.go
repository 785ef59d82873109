package service

import (
	"context"
	"errors"

	"github.com/example/foodmart/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns user by login
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// TokenIssuer creates signed tokens for authenticated users.
type TokenIssuer interface {
	CreateToken(user *models.User) (string, error)
}

// UserService implements registration and login
type UserService struct {
	repo  UserRepository
	token TokenIssuer
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository, token TokenIssuer) *UserService {
	return &UserService{repo: repo, token: token}
}

// Register creates a new user with a hashed password and returns a token.
func (us *UserService) Register(ctx context.Context, login, password, role string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
	}

	user, err = us.repo.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	return us.token.CreateToken(user)
}

// Login verifies credentials and returns a token.
func (us *UserService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := us.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return us.token.CreateToken(user)
}
