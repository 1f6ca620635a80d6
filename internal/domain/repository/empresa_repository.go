package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// EmpresaExternaRepository define el puerto de persistencia para EmpresaExterna (DIP).
// La implementación vive en infrastructure. Las consultas por defecto excluyen
// registros inactivos.
type EmpresaExternaRepository interface {
	Create(ctx context.Context, empresa *entity.EmpresaExterna) error
	GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error)
	// ListActive devuelve el directorio completo en orden de inserción (id).
	// El matcher de ingesta depende de ese orden para el desempate.
	ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error)
	List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error)
}
