package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

// EmpresaUseCase administra el directorio de empresas externas.
type EmpresaUseCase struct {
	empresaRepo repository.EmpresaExternaRepository
}

// NewEmpresaUseCase construye el caso de uso de empresas externas.
func NewEmpresaUseCase(empresaRepo repository.EmpresaExternaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{empresaRepo: empresaRepo}
}

// Create da de alta una empresa externa. NombreTOA no puede quedar vacío: es
// la clave de correlación contra los registros de la plataforma de despacho y
// una cadena vacía calzaría con cualquier texto.
func (uc *EmpresaUseCase) Create(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	nombreTOA := strings.TrimSpace(in.NombreTOA)
	rut := strings.TrimSpace(in.RUT)
	if nombre == "" || nombreTOA == "" || rut == "" {
		return nil, fmt.Errorf("%w: 'nombre', 'nombre_toa' y 'rut' son requeridos", domain.ErrInvalidInput)
	}

	now := time.Now()
	empresa := &entity.EmpresaExterna{
		UUID:      uuid.New().String(),
		Nombre:    nombre,
		NombreTOA: nombreTOA,
		RUT:       rut,
		CreatedAt: now,
		UpdatedAt: now,
		Active:    true,
	}
	if err := uc.empresaRepo.Create(ctx, empresa); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("ya existe una empresa con ese nombre o RUT: %w", domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("crear empresa: %w", err)
	}
	return toEmpresaResponse(empresa), nil
}

// GetByID busca una empresa activa por id.
func (uc *EmpresaUseCase) GetByID(ctx context.Context, id int64) (*dto.EmpresaResponse, error) {
	empresa, err := uc.empresaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, fmt.Errorf("empresa %d: %w", id, domain.ErrNotFound)
	}
	return toEmpresaResponse(empresa), nil
}

// GetAll lista las empresas activas en orden de directorio.
func (uc *EmpresaUseCase) GetAll(ctx context.Context) (*dto.EmpresaListResponse, error) {
	list, err := uc.empresaRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmpresaResponse(e))
	}
	return &dto.EmpresaListResponse{Empresas: items, Total: len(items)}, nil
}

// List lista las empresas activas paginadas (vista de administración).
func (uc *EmpresaUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.EmpresaListResponse, error) {
	page.Clamp()
	list, err := uc.empresaRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmpresaResponse(e))
	}
	return &dto.EmpresaListResponse{Empresas: items, Total: len(items)}, nil
}

func toEmpresaResponse(e *entity.EmpresaExterna) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:        e.ID,
		UUID:      e.UUID,
		Nombre:    e.Nombre,
		NombreTOA: e.NombreTOA,
		RUT:       e.RUT,
		CreatedAt: e.CreatedAt,
	}
}
