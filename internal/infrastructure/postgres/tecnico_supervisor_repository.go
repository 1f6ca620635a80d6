package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.TecnicoSupervisorRepository = (*TecnicoSupervisorRepo)(nil)

// TecnicoSupervisorRepo implementación del puerto TecnicoSupervisorRepository sobre PostgreSQL.
type TecnicoSupervisorRepo struct {
	q Querier
}

// NewTecnicoSupervisorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTecnicoSupervisorRepository(q Querier) *TecnicoSupervisorRepo {
	return &TecnicoSupervisorRepo{q: q}
}

const tecnicoColumns = `id, uuid, nombre_tecnico, rut_tecnico, nombre_supervisor, id_empresa,
	created_at, updated_at, active`

// BulkCreate inserta el lote completo y devuelve los ids creados en orden.
func (r *TecnicoSupervisorRepo) BulkCreate(ctx context.Context, tecnicos []*entity.TecnicoSupervisor) ([]int64, error) {
	if len(tecnicos) == 0 {
		return []int64{}, nil
	}

	query := `INSERT INTO tecnicos_supervisores
		(uuid, nombre_tecnico, rut_tecnico, nombre_supervisor, id_empresa, created_at, updated_at, active) VALUES `
	args := make([]any, 0, len(tecnicos)*8)
	for i, t := range tecnicos {
		if i > 0 {
			query += ", "
		}
		base := i * 8
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, t.UUID, t.NombreTecnico, t.RutTecnico, t.NombreSupervisor,
			t.IDEmpresa, t.CreatedAt, t.UpdatedAt, t.Active)
	}
	query += ` RETURNING id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bulk insert tecnicos: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(tecnicos))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByEmpresa técnicos activos de una empresa, orden alfabético por técnico.
func (r *TecnicoSupervisorRepo) ListByEmpresa(ctx context.Context, idEmpresa int64) ([]*entity.TecnicoSupervisor, error) {
	query := `SELECT ` + tecnicoColumns + ` FROM tecnicos_supervisores
		WHERE id_empresa = $1 AND active = TRUE ORDER BY nombre_tecnico`
	return r.queryMany(ctx, query, idEmpresa)
}

// ListAll dump completo de técnicos activos (API de lectura).
func (r *TecnicoSupervisorRepo) ListAll(ctx context.Context) ([]*entity.TecnicoSupervisor, error) {
	query := `SELECT ` + tecnicoColumns + ` FROM tecnicos_supervisores
		WHERE active = TRUE ORDER BY id_empresa, nombre_tecnico`
	return r.queryMany(ctx, query)
}

func (r *TecnicoSupervisorRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.TecnicoSupervisor, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tecnicos: %w", err)
	}
	defer rows.Close()
	var list []*entity.TecnicoSupervisor
	for rows.Next() {
		var t entity.TecnicoSupervisor
		if err := rows.Scan(
			&t.ID, &t.UUID, &t.NombreTecnico, &t.RutTecnico, &t.NombreSupervisor, &t.IDEmpresa,
			&t.CreatedAt, &t.UpdatedAt, &t.Active,
		); err != nil {
			return nil, fmt.Errorf("scan tecnico: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
