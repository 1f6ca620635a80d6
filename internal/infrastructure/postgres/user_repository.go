package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Create y Update tocan varias tablas (users, user_roles, user_empresas), por
// eso este repo recibe el pool y abre sus propias transacciones.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, uuid, username, password_hash, created_at, updated_at, active`

// Create persiste el usuario y sus asignaciones de roles y empresas en una
// sola transacción.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO users (uuid, username, password_hash, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err = tx.QueryRow(ctx, query,
		user.UUID, user.Username, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt, user.Active,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	for _, role := range user.Roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (id_user, id_role) VALUES ($1, $2)`,
			user.ID, role.ID,
		); err != nil {
			return fmt.Errorf("insert user_role: %w", err)
		}
	}
	for _, empresa := range user.Empresas {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_empresas (id_user, id_empresa) VALUES ($1, $2)`,
			user.ID, empresa.ID,
		); err != nil {
			return fmt.Errorf("insert user_empresa: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo por id con roles y empresas. nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND active = TRUE`, id)
}

// GetByIDAny obtiene un usuario por id sin filtrar por active (administración).
func (r *UserRepo) GetByIDAny(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario activo por username. nil, nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 AND active = TRUE`, username)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.UUID, &u.Username, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.Active,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := r.loadAssociations(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) loadAssociations(ctx context.Context, u *entity.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.uuid, r.name, r.created_at, r.updated_at, r.active
		FROM roles r
		JOIN user_roles ur ON ur.id_role = r.id
		WHERE ur.id_user = $1 AND r.active = TRUE
		ORDER BY r.id`, u.ID)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()
	u.Roles = u.Roles[:0]
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.UUID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.Active); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		u.Roles = append(u.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// El orden de asignación importa: la primera empresa del usuario es la que
	// usa el módulo de técnicos.
	erows, err := r.pool.Query(ctx, `
		SELECT e.id, e.uuid, e.nombre, e.nombre_toa, e.rut, e.created_at, e.updated_at, e.active
		FROM empresas_externas e
		JOIN user_empresas ue ON ue.id_empresa = e.id
		WHERE ue.id_user = $1 AND e.active = TRUE
		ORDER BY ue.id`, u.ID)
	if err != nil {
		return fmt.Errorf("load empresas: %w", err)
	}
	defer erows.Close()
	u.Empresas = u.Empresas[:0]
	for erows.Next() {
		var e entity.EmpresaExterna
		if err := erows.Scan(&e.ID, &e.UUID, &e.Nombre, &e.NombreTOA, &e.RUT, &e.CreatedAt, &e.UpdatedAt, &e.Active); err != nil {
			return fmt.Errorf("scan empresa: %w", err)
		}
		u.Empresas = append(u.Empresas, e)
	}
	return erows.Err()
}

// Update actualiza username/password_hash y, si user.Empresas no es nil,
// reemplaza las asignaciones de empresa. Todo en una transacción.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE users SET username = $2, password_hash = $3, updated_at = $4
		WHERE id = $1`
	if _, err := tx.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}

	if user.Empresas != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_empresas WHERE id_user = $1`, user.ID); err != nil {
			return fmt.Errorf("clear user_empresas: %w", err)
		}
		for _, empresa := range user.Empresas {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_empresas (id_user, id_empresa) VALUES ($1, $2)`,
				user.ID, empresa.ID,
			); err != nil {
				return fmt.Errorf("insert user_empresa: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List usuarios activos con paginación, más reciente primero.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE active = TRUE ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListAll dump completo de usuarios activos (API de lectura).
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE active = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.UUID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range list {
		if err := r.loadAssociations(ctx, u); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListInactive usuarios eliminados con paginación (administración).
func (r *UserRepo) ListInactive(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE active = FALSE ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *UserRepo) list(ctx context.Context, query string, limit, offset int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.UUID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range list {
		if err := r.loadAssociations(ctx, u); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SetActive cambia el flag de soft-delete y avanza updated_at.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// GetRoleByName obtiene un rol del catálogo por nombre. nil, nil si no existe.
func (r *UserRepo) GetRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.pool.QueryRow(ctx, `
		SELECT id, uuid, name, created_at, updated_at, active
		FROM roles WHERE name = $1 AND active = TRUE`, name).Scan(
		&role.ID, &role.UUID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.Active,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}
