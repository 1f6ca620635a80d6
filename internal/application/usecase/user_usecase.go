package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/toa-ordenes-api/internal/application/auth"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Largos mínimos de credenciales.
const (
	usernameMinLen = 3
	passwordMinLen = 4
)

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	userRepo    repository.UserRepository
	empresaRepo repository.EmpresaExternaRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, empresaRepo repository.EmpresaExternaRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, empresaRepo: empresaRepo}
}

// Create da de alta un usuario con rol supervisor por defecto, asignado a la
// empresa indicada. Usuario y asignaciones se persisten en una transacción.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < usernameMinLen {
		return nil, fmt.Errorf("%w: el nombre de usuario debe tener al menos %d caracteres", domain.ErrInvalidInput, usernameMinLen)
	}
	if len(in.Password) < passwordMinLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, passwordMinLen)
	}

	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("el nombre de usuario '%s' ya existe: %w", username, domain.ErrDuplicate)
	}

	empresa, err := uc.empresaRepo.GetByID(ctx, in.IDEmpresa)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, fmt.Errorf("empresa %d: %w", in.IDEmpresa, domain.ErrNotFound)
	}

	role, err := uc.userRepo.GetRoleByName(ctx, entity.RoleSupervisor)
	if err != nil {
		return nil, fmt.Errorf("buscar rol: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("rol '%s': %w", entity.RoleSupervisor, domain.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		UUID:         uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []entity.Role{*role},
		Empresas:     []entity.EmpresaExterna{*empresa},
		CreatedAt:    now,
		UpdatedAt:    now,
		Active:       true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("el nombre de usuario '%s' ya existe: %w", username, domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	return auth.ToUserResponse(user), nil
}

// Update actualización parcial: los campos nil quedan sin cambios.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < usernameMinLen {
			return nil, fmt.Errorf("%w: el nombre de usuario debe tener al menos %d caracteres", domain.ErrInvalidInput, usernameMinLen)
		}
		if username != user.Username {
			existing, err := uc.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("buscar usuario: %w", err)
			}
			if existing != nil {
				return nil, fmt.Errorf("el nombre de usuario '%s' ya existe: %w", username, domain.ErrDuplicate)
			}
		}
		user.Username = username
	}
	if in.Password != nil {
		if len(*in.Password) < passwordMinLen {
			return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, passwordMinLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.IDEmpresa != nil {
		empresa, err := uc.empresaRepo.GetByID(ctx, *in.IDEmpresa)
		if err != nil {
			return nil, fmt.Errorf("buscar empresa: %w", err)
		}
		if empresa == nil {
			return nil, fmt.Errorf("empresa %d: %w", *in.IDEmpresa, domain.ErrNotFound)
		}
		user.Empresas = []entity.EmpresaExterna{*empresa}
	} else {
		// nil señala al repo que no toque las asignaciones de empresa.
		user.Empresas = nil
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}

	updated, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("recargar usuario: %w", err)
	}
	return auth.ToUserResponse(updated), nil
}

// SoftDelete marca un usuario como inactivo. El usuario dev no se puede eliminar.
func (uc *UserUseCase) SoftDelete(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByIDAny(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	if user.Username == entity.UsernameDev {
		return fmt.Errorf("el usuario '%s' no puede ser eliminado: %w", entity.UsernameDev, domain.ErrForbidden)
	}
	if !user.Active {
		return fmt.Errorf("el usuario %d ya está eliminado: %w", id, domain.ErrConflict)
	}
	if err := uc.userRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	return nil
}

// Restore reactiva un usuario eliminado.
func (uc *UserUseCase) Restore(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByIDAny(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	if user.Active {
		return fmt.Errorf("el usuario %d ya está activo: %w", id, domain.ErrConflict)
	}
	if err := uc.userRepo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("restaurar usuario: %w", err)
	}
	return nil
}

// GetByID busca un usuario activo por id.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios activos, paginado con clamp de per_page.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Clamp()
	list, err := uc.userRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	return toUserListResponse(list, page), nil
}

// ListInactive usuarios eliminados, paginado (vista de administración).
func (uc *UserUseCase) ListInactive(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Clamp()
	list, err := uc.userRepo.ListInactive(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar usuarios inactivos: %w", err)
	}
	return toUserListResponse(list, page), nil
}

// DumpAll dump completo de usuarios activos para la API de lectura (PowerBI).
func (uc *UserUseCase) DumpAll(ctx context.Context) (*dto.UserListResponse, error) {
	list, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Users: items, Total: len(items)}, nil
}

func toUserListResponse(list []*entity.User, page dto.PageRequest) *dto.UserListResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Users: items,
		Total: len(items),
		Page:  dto.PageResponse{Page: page.Page, PerPage: page.PerPage},
	}
}
