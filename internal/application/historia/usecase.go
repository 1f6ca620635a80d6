package historia

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con un repositorio de historia atado a una
// transacción; el lote completo se confirma o se revierte como unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.HistoriaOTRepository) error) error
}

// UseCase procesa lotes de historia TOA por zona: asocia cada registro a la
// empresa externa cuyo nombre_toa aparece en el campo Técnico y persiste los
// que hacen match.
type UseCase struct {
	tx           TxRunner
	historiaRepo repository.HistoriaOTRepository
	empresaRepo  repository.EmpresaExternaRepository
}

// NewUseCase construye el caso de uso de ingesta de historia.
func NewUseCase(tx TxRunner, historiaRepo repository.HistoriaOTRepository, empresaRepo repository.EmpresaExternaRepository) *UseCase {
	return &UseCase{tx: tx, historiaRepo: historiaRepo, empresaRepo: empresaRepo}
}

// ProcessZoneBatch procesa un lote de registros para la zona indicada.
// El directorio de empresas se carga una vez por lote (no por registro) y el
// match es el primer nombre_toa, en orden de directorio, que aparece como
// substring del campo Técnico (sensible a mayúsculas). Los registros con match
// se persisten en una sola transacción; los demás se devuelven sin modificar,
// en el orden de entrada, y no se persisten.
func (uc *UseCase) ProcessZoneBatch(ctx context.Context, zona entity.Zona, registros []dto.RegistroHistoria) ([]dto.RegistroHistoria, error) {
	if zona == "" {
		return nil, fmt.Errorf("%w: zona desconocida", domain.ErrInvalidInput)
	}

	noIngresadas := make([]dto.RegistroHistoria, 0)
	if len(registros) == 0 {
		return noIngresadas, nil
	}

	empresas, err := uc.empresaRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar empresas externas: %w", err)
	}
	codigos := make([]string, 0, len(empresas))
	for _, e := range empresas {
		codigos = append(codigos, e.NombreTOA)
	}

	err = uc.tx.Run(ctx, func(repo repository.HistoriaOTRepository) error {
		for _, reg := range registros {
			empresa := matchEmpresa(codigos, reg.Tecnico)
			if empresa == "" {
				noIngresadas = append(noIngresadas, reg)
				continue
			}
			if err := repo.Insert(ctx, registroToEntity(reg, zona, empresa)); err != nil {
				return fmt.Errorf("insertar historia OT: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return noIngresadas, nil
}

// matchEmpresa devuelve el primer código del directorio que aparece como
// substring del campo Técnico, o "" si ninguno aparece. El desempate por orden
// de directorio es deliberado y debe preservarse.
func matchEmpresa(codigos []string, tecnico string) string {
	for _, codigo := range codigos {
		if strings.Contains(tecnico, codigo) {
			return codigo
		}
	}
	return ""
}

// SetEmpresaExterna registra una empresa externa desde el payload de importación.
func (uc *UseCase) SetEmpresaExterna(ctx context.Context, in dto.CreateEmpresaRequest) error {
	nombre := strings.TrimSpace(in.Nombre)
	nombreTOA := strings.TrimSpace(in.NombreTOA)
	rut := strings.TrimSpace(in.RUT)
	if nombre == "" || nombreTOA == "" || rut == "" {
		return fmt.Errorf("%w: nombre, nombre_toa y rut son requeridos", domain.ErrInvalidInput)
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
		return fmt.Errorf("setear la empresa externa en la base de datos: %w", err)
	}
	return nil
}

// GetHistoriaByZona consulta la historia persistida de una zona.
func (uc *UseCase) GetHistoriaByZona(ctx context.Context, zona entity.Zona) ([]*entity.HistoriaOT, error) {
	if zona == "" {
		return nil, fmt.Errorf("%w: zona desconocida", domain.ErrInvalidInput)
	}
	return uc.historiaRepo.ListByZona(ctx, zona)
}

// GetHistoriaByEmpresa consulta la historia persistida de una empresa (nombre_toa).
func (uc *UseCase) GetHistoriaByEmpresa(ctx context.Context, empresa string) ([]*entity.HistoriaOT, error) {
	return uc.historiaRepo.ListByEmpresa(ctx, empresa)
}

// GetHistoriaByRangoFecha consulta la historia persistida en un rango de fechas
// (las fechas del export son texto y se comparan lexicográficamente).
func (uc *UseCase) GetHistoriaByRangoFecha(ctx context.Context, fechaInicio, fechaFin string) ([]*entity.HistoriaOT, error) {
	return uc.historiaRepo.ListByRangoFecha(ctx, fechaInicio, fechaFin)
}

func registroToEntity(reg dto.RegistroHistoria, zona entity.Zona, empresa string) *entity.HistoriaOT {
	now := time.Now()
	return &entity.HistoriaOT{
		UUID:                     uuid.New().String(),
		Zona:                     zona,
		Empresa:                  empresa,
		OrdenDeTrabajo:           reg.OrdenDeTrabajo,
		Tecnico:                  reg.Tecnico,
		CoordX:                   reg.CoordX,
		CoordY:                   reg.CoordY,
		Duracion:                 reg.Duracion,
		Estado:                   reg.Estado,
		Fecha:                    reg.Fecha,
		FlagConsultaVecino:       reg.FlagConsultaVecino,
		FlagEstadoAprovision:     reg.FlagEstadoAprovision,
		FlagFallasMasivas:        reg.FlagFallasMasivas,
		FlagMateriales:           reg.FlagMateriales,
		FlagNiveles:              reg.FlagNiveles,
		HoraFlagEstadoAprovision: reg.HoraFlagEstadoAprovision,
		HoraFlagFallasMasivas:    reg.HoraFlagFallasMasivas,
		HoraFlagMateriales:       reg.HoraFlagMateriales,
		HoraFlagNiveles:          reg.HoraFlagNiveles,
		Inicio:                   reg.Inicio,
		IntervencionNeutra:       reg.IntervencionNeutra,
		NotasConsultaVecino:      reg.NotasConsultaVecino,
		NotasConsultaVecinoUlt:   reg.NotasConsultaVecinoUlt,
		QRDrop:                   reg.QRDrop,
		RutTecnico:               reg.RutTecnico,
		TipoRedProducto:          reg.TipoRedProducto,
		HoraUltimaVecino:         reg.HoraUltimaVecino,
		HoraQR:                   reg.HoraQR,
		TipoActividad:            reg.TipoActividad,
		ZonaDeTrabajo:            reg.ZonaDeTrabajo,
		CreatedAt:                now,
		UpdatedAt:                now,
		Active:                   true,
	}
}
