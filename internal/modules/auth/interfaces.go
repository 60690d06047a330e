package auth

import (
	"context"

	"renthub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type jwtService interface {
	GenerateToken(userID int64) (string, error)
}
