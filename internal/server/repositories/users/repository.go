// Package users contains the user store: the Repository contract and its
// in-memory and PostgreSQL implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/greeter/internal/server/models"
)

// Repository stores users keyed by id.
//
// NextID hands out identifiers that are strictly increasing and never reused
// for the lifetime of the store, deletions included.
type Repository interface {
	NextID(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, id int64, greeting string) (models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
