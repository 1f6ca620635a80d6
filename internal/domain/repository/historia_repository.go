package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// HistoriaOTRepository define el puerto de persistencia para HistoriaOT
// (almacén append-only de actividad histórica).
type HistoriaOTRepository interface {
	Insert(ctx context.Context, registro *entity.HistoriaOT) error
	ListByZona(ctx context.Context, zona entity.Zona) ([]*entity.HistoriaOT, error)
	ListByEmpresa(ctx context.Context, empresa string) ([]*entity.HistoriaOT, error)
	ListByRangoFecha(ctx context.Context, fechaInicio, fechaFin string) ([]*entity.HistoriaOT, error)
}
