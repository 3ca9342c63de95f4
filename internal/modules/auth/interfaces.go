package auth

import (
	"context"

	"staybnb/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, username, role string) (string, error)
}
