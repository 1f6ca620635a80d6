package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// ComentarioRepository define el puerto de persistencia para Comentario.
// Los métodos por defecto operan solo sobre registros activos; GetByIDAny es
// la vía de escape para vistas de administración y restauración.
type ComentarioRepository interface {
	Create(ctx context.Context, comentario *entity.Comentario) error
	GetByID(ctx context.Context, id int64) (*entity.Comentario, error)
	GetByIDAny(ctx context.Context, id int64) (*entity.Comentario, error)
	// ListByOrden devuelve los comentarios activos de la orden, más reciente primero.
	ListByOrden(ctx context.Context, idOrdenTrabajo int64) ([]*entity.Comentario, error)
	CountByOrden(ctx context.Context, idOrdenTrabajo int64) (int, error)
	ListAll(ctx context.Context) ([]*entity.Comentario, error)
	ListInactive(ctx context.Context, limit, offset int) ([]*entity.Comentario, error)
	// SetActive cambia el flag de soft-delete y avanza updated_at.
	SetActive(ctx context.Context, id int64, active bool) error
}
