package tecnicos

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

// Largos máximos de campos de técnico.
const (
	nombreMaxLen = 128
	rutMaxLen    = 16
)

// UseCase administra los registros técnico/supervisor de la empresa del usuario.
type UseCase struct {
	tecnicoRepo repository.TecnicoSupervisorRepository
	userRepo    repository.UserRepository
}

// NewUseCase construye el caso de uso de técnicos.
func NewUseCase(tecnicoRepo repository.TecnicoSupervisorRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{tecnicoRepo: tecnicoRepo, userRepo: userRepo}
}

// empresaForUser devuelve la primera empresa asignada del usuario. Cuando el
// usuario tiene varias, la primera asignación gana.
func empresaForUser(user *entity.User) (*entity.EmpresaExterna, error) {
	if len(user.Empresas) == 0 {
		return nil, fmt.Errorf("%w: el usuario no tiene empresas asociadas", domain.ErrInvalidInput)
	}
	return &user.Empresas[0], nil
}

// AddTecnicos crea registros técnico/supervisor para la empresa del usuario.
// La validación es todo-o-nada: cualquier item inválido rechaza el lote.
func (uc *UseCase) AddTecnicos(ctx context.Context, userID int64, in dto.AddTecnicosRequest) (*dto.AddTecnicosResult, error) {
	if len(in.Tecnicos) == 0 {
		return nil, fmt.Errorf("%w: debe proporcionar al menos un técnico", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", userID, domain.ErrUnauthorized)
	}
	empresa, err := empresaForUser(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var validados []*entity.TecnicoSupervisor
	var errores []string
	for i, item := range in.Tecnicos {
		nombreTecnico := strings.TrimSpace(item.NombreTecnico)
		rutTecnico := strings.TrimSpace(item.RutTecnico)
		nombreSupervisor := strings.TrimSpace(item.NombreSupervisor)

		switch {
		case nombreTecnico == "" || rutTecnico == "" || nombreSupervisor == "":
			errores = append(errores, fmt.Sprintf("técnico %d: campos requeridos faltantes", i+1))
		case utf8.RuneCountInString(nombreTecnico) > nombreMaxLen:
			errores = append(errores, fmt.Sprintf("técnico %d: el nombre del técnico no puede exceder los %d caracteres", i+1, nombreMaxLen))
		case utf8.RuneCountInString(rutTecnico) > rutMaxLen:
			errores = append(errores, fmt.Sprintf("técnico %d: el RUT no puede exceder los %d caracteres", i+1, rutMaxLen))
		case utf8.RuneCountInString(nombreSupervisor) > nombreMaxLen:
			errores = append(errores, fmt.Sprintf("técnico %d: el nombre del supervisor no puede exceder los %d caracteres", i+1, nombreMaxLen))
		default:
			validados = append(validados, &entity.TecnicoSupervisor{
				UUID:             uuid.New().String(),
				NombreTecnico:    nombreTecnico,
				RutTecnico:       rutTecnico,
				NombreSupervisor: nombreSupervisor,
				IDEmpresa:        empresa.ID,
				CreatedAt:        now,
				UpdatedAt:        now,
				Active:           true,
			})
		}
	}
	if len(errores) > 0 {
		return nil, fmt.Errorf("%w: errores de validación: %s", domain.ErrInvalidInput, strings.Join(errores, "; "))
	}

	createdIDs, err := uc.tecnicoRepo.BulkCreate(ctx, validados)
	if err != nil {
		return nil, fmt.Errorf("crear técnicos: %w", err)
	}

	return &dto.AddTecnicosResult{
		Message:      fmt.Sprintf("Se crearon %d técnicos exitosamente", len(createdIDs)),
		CreatedCount: len(createdIDs),
		CreatedIDs:   createdIDs,
		TotalCount:   len(in.Tecnicos),
	}, nil
}

// GetTecnicosForUserEmpresa lista los técnicos de la empresa del usuario.
func (uc *UseCase) GetTecnicosForUserEmpresa(ctx context.Context, userID int64) (*dto.TecnicosEmpresaResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", userID, domain.ErrUnauthorized)
	}
	empresa, err := empresaForUser(user)
	if err != nil {
		return nil, err
	}

	list, err := uc.tecnicoRepo.ListByEmpresa(ctx, empresa.ID)
	if err != nil {
		return nil, fmt.Errorf("listar técnicos: %w", err)
	}
	items := make([]dto.TecnicoResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTecnicoResponse(t))
	}
	return &dto.TecnicosEmpresaResponse{
		EmpresaID:     empresa.ID,
		EmpresaNombre: empresa.Nombre,
		Tecnicos:      items,
	}, nil
}

// GetAllTecnicos dump completo para la API de lectura (PowerBI).
func (uc *UseCase) GetAllTecnicos(ctx context.Context) (*dto.TecnicoDumpResponse, error) {
	list, err := uc.tecnicoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar técnicos: %w", err)
	}
	items := make([]dto.TecnicoResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTecnicoResponse(t))
	}
	return &dto.TecnicoDumpResponse{TecnicosSupervisores: items, Total: len(items)}, nil
}

func toTecnicoResponse(t *entity.TecnicoSupervisor) dto.TecnicoResponse {
	return dto.TecnicoResponse{
		ID:               t.ID,
		NombreTecnico:    t.NombreTecnico,
		RutTecnico:       t.RutTecnico,
		NombreSupervisor: t.NombreSupervisor,
		IDEmpresa:        t.IDEmpresa,
		CreatedAt:        t.CreatedAt,
	}
}
