package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.OrdenTrabajoRepository = (*OrdenTrabajoRepo)(nil)

// OrdenTrabajoRepo implementación del puerto OrdenTrabajoRepository sobre PostgreSQL.
type OrdenTrabajoRepo struct {
	q Querier
}

// NewOrdenTrabajoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenTrabajoRepository(q Querier) *OrdenTrabajoRepo {
	return &OrdenTrabajoRepo{q: q}
}

const ordenColumns = `id, uuid, codigo, id_empresa, created_at, updated_at, active`

// Create persiste una orden de trabajo nueva.
func (r *OrdenTrabajoRepo) Create(ctx context.Context, orden *entity.OrdenTrabajo) error {
	query := `
		INSERT INTO ordenes_trabajo (uuid, codigo, id_empresa, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		orden.UUID, orden.Codigo, orden.IDEmpresa,
		orden.CreatedAt, orden.UpdatedAt, orden.Active,
	).Scan(&orden.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden_trabajo: %w", err)
	}
	return nil
}

// GetByID obtiene una orden activa por id. Devuelve nil, nil si no existe.
func (r *OrdenTrabajoRepo) GetByID(ctx context.Context, id int64) (*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_trabajo WHERE id = $1 AND active = TRUE`
	o, err := scanOrden(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden by id: %w", err)
	}
	return o, nil
}

// GetByCodigo obtiene una orden activa por su código de negocio. nil, nil si no existe.
func (r *OrdenTrabajoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_trabajo WHERE codigo = $1 AND active = TRUE`
	o, err := scanOrden(r.q.QueryRow(ctx, query, codigo))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden by codigo: %w", err)
	}
	return o, nil
}

// BulkInsert inserta el lote en una sola sentencia con ON CONFLICT (codigo)
// DO NOTHING y devuelve los códigos efectivamente insertados. Duplicados
// dentro del mismo lote también colapsan en una fila.
func (r *OrdenTrabajoRepo) BulkInsert(ctx context.Context, ordenes []*entity.OrdenTrabajo) ([]string, error) {
	if len(ordenes) == 0 {
		return []string{}, nil
	}

	query := `INSERT INTO ordenes_trabajo (uuid, codigo, id_empresa, created_at, updated_at, active) VALUES `
	args := make([]any, 0, len(ordenes)*6)
	for i, o := range ordenes {
		if i > 0 {
			query += ", "
		}
		base := i * 6
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, o.UUID, o.Codigo, o.IDEmpresa, o.CreatedAt, o.UpdatedAt, o.Active)
	}
	query += ` ON CONFLICT (codigo) DO NOTHING RETURNING codigo`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bulk insert ordenes: %w", err)
	}
	defer rows.Close()

	inserted := []string{}
	for rows.Next() {
		var codigo string
		if err := rows.Scan(&codigo); err != nil {
			return nil, fmt.Errorf("scan codigo: %w", err)
		}
		inserted = append(inserted, codigo)
	}
	return inserted, rows.Err()
}

// ListAll lista todas las ordenes activas, más reciente primero.
func (r *OrdenTrabajoRepo) ListAll(ctx context.Context) ([]*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_trabajo WHERE active = TRUE ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenTrabajo
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrden(row pgxScanner) (*entity.OrdenTrabajo, error) {
	var o entity.OrdenTrabajo
	err := row.Scan(
		&o.ID, &o.UUID, &o.Codigo, &o.IDEmpresa,
		&o.CreatedAt, &o.UpdatedAt, &o.Active,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
