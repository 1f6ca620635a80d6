package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.EmpresaExternaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaExternaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColumns = `id, uuid, nombre, nombre_toa, rut, created_at, updated_at, active`

// Create persiste una empresa externa nueva.
func (r *EmpresaRepo) Create(ctx context.Context, empresa *entity.EmpresaExterna) error {
	query := `
		INSERT INTO empresas_externas (uuid, nombre, nombre_toa, rut, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		empresa.UUID, empresa.Nombre, empresa.NombreTOA, empresa.RUT,
		empresa.CreatedAt, empresa.UpdatedAt, empresa.Active,
	).Scan(&empresa.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa activa por id. Devuelve nil, nil si no existe.
func (r *EmpresaRepo) GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas_externas WHERE id = $1 AND active = TRUE`
	e, err := scanEmpresa(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa by id: %w", err)
	}
	return e, nil
}

// ListActive devuelve el directorio completo de empresas activas en orden de
// inserción (id ascendente); el matcher de ingesta depende de ese orden.
func (r *EmpresaRepo) ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas_externas WHERE active = TRUE ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmpresaExterna
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// List lista empresas activas con paginación.
func (r *EmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas_externas WHERE active = TRUE ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmpresaExterna
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmpresa(row pgxScanner) (*entity.EmpresaExterna, error) {
	var e entity.EmpresaExterna
	err := row.Scan(
		&e.ID, &e.UUID, &e.Nombre, &e.NombreTOA, &e.RUT,
		&e.CreatedAt, &e.UpdatedAt, &e.Active,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
