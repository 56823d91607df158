// Package service contains the application's business logic. Services
// orchestrate repositories and external providers and return domain
// types; HTTP concerns live in the api package.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
)

// UserService handles user profile operations.
type UserService interface {
	CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error)
	GetUser(ctx context.Context, userID string) (*domain.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	user := &domain.User{
		Timezone:  req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		City:      req.City,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// getUser parses a user ID and loads the profile. A malformed ID maps to
// ErrInvalidInput so handlers render 400 rather than 404.
func getUser(ctx context.Context, users repository.UserRepository, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// parseID parses an entity ID, mapping malformed values to ErrInvalidInput.
func parseID(raw, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id", domain.ErrInvalidInput, kind)
	}
	return id, nil
}
