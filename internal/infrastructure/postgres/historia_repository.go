package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.HistoriaOTRepository = (*HistoriaOTRepo)(nil)

// HistoriaOTRepo implementación del puerto HistoriaOTRepository sobre PostgreSQL.
// La tabla es append-only: la ingesta solo inserta.
type HistoriaOTRepo struct {
	q Querier
}

// NewHistoriaOTRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoriaOTRepository(q Querier) *HistoriaOTRepo {
	return &HistoriaOTRepo{q: q}
}

const historiaColumns = `id, uuid, zona, empresa, orden_de_trabajo, tecnico, coord_x, coord_y,
	duracion, estado, fecha, flag_consulta_vecino, flag_estado_aprovision, flag_fallas_masivas,
	flag_materiales, flag_niveles, hora_flag_estado_aprovision, hora_flag_fallas_masivas,
	hora_flag_materiales, hora_flag_niveles, inicio, intervencion_neutra, notas_consulta_vecino,
	notas_consulta_vecino_ult, qr_drop, rut_tecnico, tipo_red_producto, hora_ultima_vecino,
	hora_qr, tipo_actividad, zona_de_trabajo, created_at, updated_at, active`

// Insert persiste un registro de historia.
func (r *HistoriaOTRepo) Insert(ctx context.Context, h *entity.HistoriaOT) error {
	query := `
		INSERT INTO historia_ot (uuid, zona, empresa, orden_de_trabajo, tecnico, coord_x, coord_y,
			duracion, estado, fecha, flag_consulta_vecino, flag_estado_aprovision, flag_fallas_masivas,
			flag_materiales, flag_niveles, hora_flag_estado_aprovision, hora_flag_fallas_masivas,
			hora_flag_materiales, hora_flag_niveles, inicio, intervencion_neutra, notas_consulta_vecino,
			notas_consulta_vecino_ult, qr_drop, rut_tecnico, tipo_red_producto, hora_ultima_vecino,
			hora_qr, tipo_actividad, zona_de_trabajo, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		h.UUID, h.Zona, h.Empresa, h.OrdenDeTrabajo, h.Tecnico, h.CoordX, h.CoordY,
		h.Duracion, h.Estado, h.Fecha, h.FlagConsultaVecino, h.FlagEstadoAprovision, h.FlagFallasMasivas,
		h.FlagMateriales, h.FlagNiveles, h.HoraFlagEstadoAprovision, h.HoraFlagFallasMasivas,
		h.HoraFlagMateriales, h.HoraFlagNiveles, h.Inicio, h.IntervencionNeutra, h.NotasConsultaVecino,
		h.NotasConsultaVecinoUlt, h.QRDrop, h.RutTecnico, h.TipoRedProducto, h.HoraUltimaVecino,
		h.HoraQR, h.TipoActividad, h.ZonaDeTrabajo, h.CreatedAt, h.UpdatedAt, h.Active,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("insert historia: %w", err)
	}
	return nil
}

// ListByZona registros activos de una zona, más reciente primero.
func (r *HistoriaOTRepo) ListByZona(ctx context.Context, zona entity.Zona) ([]*entity.HistoriaOT, error) {
	query := `SELECT ` + historiaColumns + ` FROM historia_ot
		WHERE zona = $1 AND active = TRUE ORDER BY created_at DESC`
	return r.queryMany(ctx, query, zona)
}

// ListByEmpresa registros activos de una empresa (nombre_toa), más reciente primero.
func (r *HistoriaOTRepo) ListByEmpresa(ctx context.Context, empresa string) ([]*entity.HistoriaOT, error) {
	query := `SELECT ` + historiaColumns + ` FROM historia_ot
		WHERE empresa = $1 AND active = TRUE ORDER BY created_at DESC`
	return r.queryMany(ctx, query, empresa)
}

// ListByRangoFecha registros activos cuyo campo fecha (texto del export TOA)
// cae en el rango inclusivo [fechaInicio, fechaFin]. El formato de fecha del
// export ordena lexicográficamente.
func (r *HistoriaOTRepo) ListByRangoFecha(ctx context.Context, fechaInicio, fechaFin string) ([]*entity.HistoriaOT, error) {
	query := `SELECT ` + historiaColumns + ` FROM historia_ot
		WHERE fecha >= $1 AND fecha <= $2 AND active = TRUE ORDER BY fecha`
	return r.queryMany(ctx, query, fechaInicio, fechaFin)
}

func (r *HistoriaOTRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.HistoriaOT, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list historia: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoriaOT
	for rows.Next() {
		var h entity.HistoriaOT
		if err := rows.Scan(
			&h.ID, &h.UUID, &h.Zona, &h.Empresa, &h.OrdenDeTrabajo, &h.Tecnico, &h.CoordX, &h.CoordY,
			&h.Duracion, &h.Estado, &h.Fecha, &h.FlagConsultaVecino, &h.FlagEstadoAprovision, &h.FlagFallasMasivas,
			&h.FlagMateriales, &h.FlagNiveles, &h.HoraFlagEstadoAprovision, &h.HoraFlagFallasMasivas,
			&h.HoraFlagMateriales, &h.HoraFlagNiveles, &h.Inicio, &h.IntervencionNeutra, &h.NotasConsultaVecino,
			&h.NotasConsultaVecinoUlt, &h.QRDrop, &h.RutTecnico, &h.TipoRedProducto, &h.HoraUltimaVecino,
			&h.HoraQR, &h.TipoActividad, &h.ZonaDeTrabajo, &h.CreatedAt, &h.UpdatedAt, &h.Active,
		); err != nil {
			return nil, fmt.Errorf("scan historia: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
