package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT más los datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserEmpresaRef referencia corta a una empresa asignada.
type UserEmpresaRef struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	NombreTOA string `json:"nombre_toa"`
}

// UserResponse representación de un usuario con roles y empresas.
type UserResponse struct {
	ID        int64            `json:"id"`
	Username  string           `json:"username"`
	Roles     []string         `json:"roles"`
	Empresas  []UserEmpresaRef `json:"empresas"`
	IsDev     bool             `json:"is_dev"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UserListResponse listado de usuarios (admin).
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
	Page  PageResponse   `json:"page"`
}

// CreateUserRequest alta de usuario (admin). El rol por defecto es supervisor.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IDEmpresa int64  `json:"id_empresa"`
}

// UpdateUserRequest actualización parcial de usuario (admin).
// Punteros nil = campo sin cambios.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	IDEmpresa *int64  `json:"id_empresa"`
}

// OperationResult resultado genérico de operaciones de administración.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
