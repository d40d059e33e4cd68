// Package services contains server-side business logic. UserService turns
// endpoint calls into store operations: it allocates ids, builds greetings,
// and wraps store errors for the transport layer.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/greeter/internal/server/models"
	"github.com/dmitrijs2005/greeter/internal/server/repositories/users"
)

// DefaultName is used when a registration carries no name.
const DefaultName = "Stranger"

type UserService struct {
	repo users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo}
}

// Greeting builds the greeting stored for a newly registered user.
func Greeting(name string) string {
	return "Hello, " + name + "!"
}

// List returns every stored user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	result, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// Register creates a user greeting name, or DefaultName when name is empty.
func (s *UserService) Register(ctx context.Context, name string) (models.User, error) {
	if name == "" {
		name = DefaultName
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("error allocating user id: %w", err)
	}

	user, err := s.repo.Add(ctx, models.User{ID: id, Greeting: Greeting(name)})
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Rename replaces the greeting of user id with newName as is.
// A missing user yields an error matching common.ErrorNotFound.
func (s *UserService) Rename(ctx context.Context, id int64, newName string) (models.User, error) {
	user, err := s.repo.Update(ctx, id, newName)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating user %d: %w", id, err)
	}
	return user, nil
}

// Remove deletes user id and reports whether it existed.
func (s *UserService) Remove(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting user %d: %w", id, err)
	}
	return ok, nil
}
