package repository

import (
	"context"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y su UserRole (DIP).
type UserRepository interface {
	// CreateWithRole persiste el usuario y su UserRole en una sola transacción:
	// si falla cualquiera de las dos escrituras no queda nada guardado.
	CreateWithRole(ctx context.Context, user *entity.User, role *entity.UserRole) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetRole devuelve (nil, nil) si el usuario no tiene UserRole.
	GetRole(ctx context.Context, userID string) (*entity.UserRole, error)
}
