package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y GetByUsername cargan roles y empresas asignadas. Las consultas
// por defecto excluyen usuarios inactivos; ListInactive y GetByIDAny son la
// vía de escape para vistas de administración.
type UserRepository interface {
	// Create persiste el usuario y sus asignaciones de roles y empresas en
	// una sola transacción.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDAny(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update actualiza username/password_hash y, si user.Empresas no es nil,
	// reemplaza las asignaciones de empresa.
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// ListAll dump completo de usuarios activos para la API de lectura.
	ListAll(ctx context.Context) ([]*entity.User, error)
	ListInactive(ctx context.Context, limit, offset int) ([]*entity.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	GetRoleByName(ctx context.Context, name string) (*entity.Role, error)
}
