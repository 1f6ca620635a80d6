package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTecnico    = "tecnico"
)

// UsernameDev es el superusuario distinguido: no se puede eliminar y
// no está sujeto al alcance por empresa.
const UsernameDev = "dev"

// Role entidad de catálogo para roles de usuario.
type Role struct {
	ID        int64
	UUID      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// User representa un usuario del sistema. Pertenece a N empresas externas
// (asignación muchos-a-muchos) y tiene N roles.
type User struct {
	ID           int64
	UUID         string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []Role
	Empresas     []EmpresaExterna
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Active       bool
}

// HasRole informa si el usuario tiene el rol indicado.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin informa si el usuario salta el alcance por empresa:
// el usuario dev o cualquier usuario con rol admin.
func (u *User) IsAdmin() bool {
	return u.Username == UsernameDev || u.HasRole(RoleAdmin)
}

// HasEmpresa informa si el usuario está asignado a la empresa indicada.
func (u *User) HasEmpresa(idEmpresa int64) bool {
	for _, e := range u.Empresas {
		if e.ID == idEmpresa {
			return true
		}
	}
	return false
}
