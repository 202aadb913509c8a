package service

import (
	"context"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/metrics"
	"stargazer/exercise-tracker/internal/repository"
)

// --- Service Interface ---
type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser stores a new user. Usernames need not be unique.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, invalid("username", "username can't be empty")
	}

	user := &domain.User{Username: username}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	metrics.ObserveRecordCreated("user")
	return user, nil
}

// ListUsers returns every stored user; an empty store yields an empty, non-nil slice.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
