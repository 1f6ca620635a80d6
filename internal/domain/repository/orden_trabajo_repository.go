package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// OrdenTrabajoRepository define el puerto de persistencia para OrdenTrabajo.
type OrdenTrabajoRepository interface {
	Create(ctx context.Context, orden *entity.OrdenTrabajo) error
	GetByID(ctx context.Context, id int64) (*entity.OrdenTrabajo, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.OrdenTrabajo, error)
	// BulkInsert inserta el lote en una sola sentencia con ON CONFLICT (codigo)
	// DO NOTHING y devuelve los códigos efectivamente insertados. La
	// verificación de duplicados y la inserción son atómicas en el storage.
	BulkInsert(ctx context.Context, ordenes []*entity.OrdenTrabajo) (inserted []string, err error)
	ListAll(ctx context.Context) ([]*entity.OrdenTrabajo, error)
}
