package ordenes

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

// CodigoMaxLen largo máximo del código de negocio de una orden.
const CodigoMaxLen = 32

// UseCase maneja la inserción masiva de ordenes de trabajo desde callers
// externos de confianza, tolerando duplicados de envíos anteriores.
type UseCase struct {
	ordenRepo   repository.OrdenTrabajoRepository
	empresaRepo repository.EmpresaExternaRepository
}

// NewUseCase construye el caso de uso de ordenes de trabajo.
func NewUseCase(ordenRepo repository.OrdenTrabajoRepository, empresaRepo repository.EmpresaExternaRepository) *UseCase {
	return &UseCase{ordenRepo: ordenRepo, empresaRepo: empresaRepo}
}

// AddOrdenesTrabajo valida cada item de forma independiente (un item inválido
// no aborta a sus hermanos) e inserta los válidos en una sola operación con
// política de conflicto "saltar códigos ya existentes". Un error del storage
// es falla total del lote: nada queda confirmado.
func (uc *UseCase) AddOrdenesTrabajo(ctx context.Context, items []dto.OrdenBulkItem) (*dto.OrdenBulkResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el lote no puede estar vacío", domain.ErrInvalidInput)
	}

	empresas, err := uc.empresaRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar empresas externas: %w", err)
	}
	empresaIDs := make(map[int64]bool, len(empresas))
	for _, e := range empresas {
		empresaIDs[e.ID] = true
	}

	result := &dto.OrdenBulkResult{
		Inserted:    []string{},
		NotInserted: []string{},
		Errors:      []string{},
	}

	now := time.Now()
	var validadas []*entity.OrdenTrabajo
	for i, item := range items {
		codigo := strings.TrimSpace(item.Codigo)
		switch {
		case codigo == "":
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: 'codigo' no puede estar vacío", i))
		case utf8.RuneCountInString(codigo) > CodigoMaxLen:
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: 'codigo' no puede exceder los %d caracteres", i, CodigoMaxLen))
		case !empresaIDs[item.IDEmpresa]:
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: la empresa con id %d no existe", i, item.IDEmpresa))
		default:
			validadas = append(validadas, &entity.OrdenTrabajo{
				UUID:      uuid.New().String(),
				Codigo:    codigo,
				IDEmpresa: item.IDEmpresa,
				CreatedAt: now,
				UpdatedAt: now,
				Active:    true,
			})
		}
	}

	if len(validadas) == 0 {
		return result, nil
	}

	inserted, err := uc.ordenRepo.BulkInsert(ctx, validadas)
	if err != nil {
		return nil, fmt.Errorf("insertar ordenes de trabajo: %w", err)
	}

	insertedSet := make(map[string]bool, len(inserted))
	for _, codigo := range inserted {
		insertedSet[codigo] = true
	}
	result.Inserted = inserted
	for _, orden := range validadas {
		if !insertedSet[orden.Codigo] && !contains(result.NotInserted, orden.Codigo) {
			result.NotInserted = append(result.NotInserted, orden.Codigo)
		}
	}
	return result, nil
}

// GetAllOrdenes dump completo de ordenes activas para la API de lectura.
func (uc *UseCase) GetAllOrdenes(ctx context.Context) (*dto.OrdenListResponse, error) {
	list, err := uc.ordenRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ordenes de trabajo: %w", err)
	}
	items := make([]dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OrdenResponse{
			ID:        o.ID,
			Codigo:    o.Codigo,
			IDEmpresa: o.IDEmpresa,
			CreatedAt: o.CreatedAt,
		})
	}
	return &dto.OrdenListResponse{OrdenesTrabajo: items, Total: len(items)}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
