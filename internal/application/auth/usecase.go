package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
	"github.com/jhoicas/toa-ordenes-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación por usuario y contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password contra usuarios activos, genera JWT y
// retorna token + usuario. Usuario inexistente, inactivo o contraseña mala
// devuelven el mismo error: la respuesta no distingue cuál falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: 'username' y 'password' son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse proyecta el usuario a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	empresas := make([]dto.UserEmpresaRef, 0, len(u.Empresas))
	for _, e := range u.Empresas {
		empresas = append(empresas, dto.UserEmpresaRef{ID: e.ID, Nombre: e.Nombre, NombreTOA: e.NombreTOA})
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     roles,
		Empresas:  empresas,
		IsDev:     u.Username == entity.UsernameDev,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
