package historia_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmpresaRepo struct {
	empresas []*entity.EmpresaExterna
	listErr  error
}

func (f *fakeEmpresaRepo) Create(ctx context.Context, e *entity.EmpresaExterna) error { return nil }
func (f *fakeEmpresaRepo) GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error) {
	return nil, nil
}
func (f *fakeEmpresaRepo) ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error) {
	return f.empresas, f.listErr
}
func (f *fakeEmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error) {
	return f.empresas, nil
}

type fakeHistoriaRepo struct {
	inserted  []*entity.HistoriaOT
	insertErr error
}

func (f *fakeHistoriaRepo) Insert(ctx context.Context, r *entity.HistoriaOT) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, r)
	return nil
}
func (f *fakeHistoriaRepo) ListByZona(ctx context.Context, z entity.Zona) ([]*entity.HistoriaOT, error) {
	return f.inserted, nil
}
func (f *fakeHistoriaRepo) ListByEmpresa(ctx context.Context, e string) ([]*entity.HistoriaOT, error) {
	return f.inserted, nil
}
func (f *fakeHistoriaRepo) ListByRangoFecha(ctx context.Context, ini, fin string) ([]*entity.HistoriaOT, error) {
	return f.inserted, nil
}

// fakeTxRunner ejecuta el callback directamente contra el repo fake; si el
// callback falla simula el rollback descartando lo insertado.
type fakeTxRunner struct {
	repo *fakeHistoriaRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repo repository.HistoriaOTRepository) error) error {
	antes := len(f.repo.inserted)
	if err := fn(f.repo); err != nil {
		f.repo.inserted = f.repo.inserted[:antes]
		return err
	}
	return nil
}

func directorio(nombres ...string) []*entity.EmpresaExterna {
	out := make([]*entity.EmpresaExterna, 0, len(nombres))
	for i, n := range nombres {
		out = append(out, &entity.EmpresaExterna{
			ID:        int64(i + 1),
			Nombre:    "Empresa " + n,
			NombreTOA: n,
			Active:    true,
		})
	}
	return out
}

func buildUseCase(empresas []*entity.EmpresaExterna) (*historia.UseCase, *fakeHistoriaRepo) {
	histRepo := &fakeHistoriaRepo{}
	uc := historia.NewUseCase(
		&fakeTxRunner{repo: histRepo},
		histRepo,
		&fakeEmpresaRepo{empresas: empresas},
	)
	return uc, histRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProcessZoneBatch — matching de empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessZoneBatch_AsignaEmpresaPorSubstring(t *testing.T) {
	uc, histRepo := buildUseCase(directorio("CREA", "INTA", "ATLA"))

	registros := []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-1001", Tecnico: "JUAN PEREZ INTA SUR"},
	}
	noIngresadas, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaSur, registros)
	require.NoError(t, err)

	assert.Empty(t, noIngresadas)
	require.Len(t, histRepo.inserted, 1)
	assert.Equal(t, "INTA", histRepo.inserted[0].Empresa)
	assert.Equal(t, entity.ZonaSur, histRepo.inserted[0].Zona)
}

// El primer nombre_toa en orden de directorio gana cuando varios calzan.
func TestProcessZoneBatch_DesempatePorOrdenDeDirectorio(t *testing.T) {
	uc, histRepo := buildUseCase(directorio("CREA", "REA"))

	// "CREA" contiene "REA" también; debe ganar CREA por ir primero.
	registros := []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-1002", Tecnico: "PEDRO SOTO CREA NORTE"},
	}
	_, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaNorte, registros)
	require.NoError(t, err)

	require.Len(t, histRepo.inserted, 1)
	assert.Equal(t, "CREA", histRepo.inserted[0].Empresa)
}

// El match es sensible a mayúsculas: "inta" en minúsculas no calza con "INTA".
func TestProcessZoneBatch_MatchSensibleAMayusculas(t *testing.T) {
	uc, histRepo := buildUseCase(directorio("INTA"))

	registros := []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-1003", Tecnico: "juan perez inta sur"},
	}
	noIngresadas, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaSur, registros)
	require.NoError(t, err)

	assert.Empty(t, histRepo.inserted)
	require.Len(t, noIngresadas, 1)
	assert.Equal(t, "1-1003", noIngresadas[0].OrdenDeTrabajo)
}

// Un registro con el campo Técnico vacío (clave ausente o null en el export)
// nunca calza y termina en no_ingresadas, sin error.
func TestProcessZoneBatch_TecnicoVacio_TerminaEnNoIngresadas(t *testing.T) {
	uc, histRepo := buildUseCase(directorio("CREA"))

	registros := []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-V", Tecnico: ""},
	}
	noIngresadas, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaSur, registros)
	require.NoError(t, err)

	assert.Empty(t, histRepo.inserted)
	require.Len(t, noIngresadas, 1)
	assert.Equal(t, "1-V", noIngresadas[0].OrdenDeTrabajo)
}

// Los registros sin match vuelven sin modificar y en el orden de entrada.
func TestProcessZoneBatch_NoIngresadasEnOrdenDeEntrada(t *testing.T) {
	uc, histRepo := buildUseCase(directorio("CREA"))

	registros := []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-A", Tecnico: "SIN EMPRESA UNO"},
		{OrdenDeTrabajo: "1-B", Tecnico: "MARIA CREA CENTRO"},
		{OrdenDeTrabajo: "1-C", Tecnico: "SIN EMPRESA DOS"},
	}
	noIngresadas, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaCentro, registros)
	require.NoError(t, err)

	require.Len(t, histRepo.inserted, 1)
	require.Len(t, noIngresadas, 2)
	assert.Equal(t, "1-A", noIngresadas[0].OrdenDeTrabajo)
	assert.Equal(t, "1-C", noIngresadas[1].OrdenDeTrabajo)
}

// Lote vacío: sin error y slice vacío no-nil (serializa como [] y no null).
func TestProcessZoneBatch_LoteVacio(t *testing.T) {
	uc, _ := buildUseCase(directorio("CREA"))

	noIngresadas, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaSur, nil)
	require.NoError(t, err)
	assert.NotNil(t, noIngresadas)
	assert.Empty(t, noIngresadas)
}

func TestProcessZoneBatch_ZonaVacia_RetornaErrInvalidInput(t *testing.T) {
	uc, _ := buildUseCase(directorio("CREA"))

	_, err := uc.ProcessZoneBatch(context.Background(), entity.Zona(""), []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-1004", Tecnico: "MARIA CREA"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una falla del insert revierte el lote completo: todo o nada.
func TestProcessZoneBatch_FallaDeInsert_RevierteLote(t *testing.T) {
	histRepo := &fakeHistoriaRepo{}
	uc := historia.NewUseCase(
		&fakeTxRunner{repo: histRepo},
		histRepo,
		&fakeEmpresaRepo{empresas: directorio("CREA")},
	)

	histRepo.insertErr = errors.New("deadlock detected")
	_, err := uc.ProcessZoneBatch(context.Background(), entity.ZonaSur, []dto.RegistroHistoria{
		{OrdenDeTrabajo: "1-1005", Tecnico: "MARIA CREA"},
		{OrdenDeTrabajo: "1-1006", Tecnico: "PEDRO CREA"},
	})

	assert.Error(t, err)
	assert.Empty(t, histRepo.inserted, "el rollback no debe dejar registros parciales")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ParseZona
// ──────────────────────────────────────────────────────────────────────────────

func TestParseZona_AliasEnIngles(t *testing.T) {
	casos := map[string]entity.Zona{
		"sur":           entity.ZonaSur,
		"south":         entity.ZonaSur,
		"norte":         entity.ZonaNorte,
		"north":         entity.ZonaNorte,
		"centro":        entity.ZonaCentro,
		"center":        entity.ZonaCentro,
		"metropolitana": entity.ZonaMetropolitana,
		"metro":         entity.ZonaMetropolitana,
	}
	for in, want := range casos {
		assert.Equal(t, want, entity.ParseZona(in), "zona %q", in)
	}
	assert.Equal(t, entity.Zona(""), entity.ParseZona("oeste"))
	assert.Equal(t, entity.Zona(""), entity.ParseZona("SUR"), "el parser no normaliza mayúsculas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SetEmpresaExterna
// ──────────────────────────────────────────────────────────────────────────────

func TestSetEmpresaExterna_CamposVacios_RetornaErrInvalidInput(t *testing.T) {
	uc, _ := buildUseCase(nil)

	err := uc.SetEmpresaExterna(context.Background(), dto.CreateEmpresaRequest{
		Nombre:    "  ",
		NombreTOA: "CREA",
		RUT:       "76.111.111-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
