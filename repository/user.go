package repository

import (
	"context"

	"github.com/taskline/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts the user if absent; an existing row is left untouched so
	// the admin flag stays immutable after first contact.
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}
