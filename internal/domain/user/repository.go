package user

import (
	"context"
)

type UserRepository interface {
	// GetActiveByEmail only returns users with is_active = true
	GetActiveByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, newUser User) (User, error)
}
