package repository

import (
	"context"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// TecnicoSupervisorRepository define el puerto de persistencia para TecnicoSupervisor.
type TecnicoSupervisorRepository interface {
	BulkCreate(ctx context.Context, tecnicos []*entity.TecnicoSupervisor) (createdIDs []int64, err error)
	ListByEmpresa(ctx context.Context, idEmpresa int64) ([]*entity.TecnicoSupervisor, error)
	ListAll(ctx context.Context) ([]*entity.TecnicoSupervisor, error)
}
