package ordenes_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/ordenes"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmpresaRepo struct {
	empresas []*entity.EmpresaExterna
}

func (f *fakeEmpresaRepo) Create(ctx context.Context, e *entity.EmpresaExterna) error { return nil }
func (f *fakeEmpresaRepo) GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error) {
	return nil, nil
}
func (f *fakeEmpresaRepo) ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error) {
	return f.empresas, nil
}
func (f *fakeEmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error) {
	return f.empresas, nil
}

// fakeOrdenRepo simula el ON CONFLICT DO NOTHING: los códigos en existentes
// no se insertan y no aparecen en el retorno.
type fakeOrdenRepo struct {
	existentes map[string]bool
	bulkErr    error
	inserted   []*entity.OrdenTrabajo
}

func (f *fakeOrdenRepo) Create(ctx context.Context, o *entity.OrdenTrabajo) error { return nil }
func (f *fakeOrdenRepo) GetByID(ctx context.Context, id int64) (*entity.OrdenTrabajo, error) {
	return nil, nil
}
func (f *fakeOrdenRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.OrdenTrabajo, error) {
	return nil, nil
}
func (f *fakeOrdenRepo) BulkInsert(ctx context.Context, ordenes []*entity.OrdenTrabajo) ([]string, error) {
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	inserted := []string{}
	for _, o := range ordenes {
		if f.existentes[o.Codigo] {
			continue
		}
		f.existentes[o.Codigo] = true
		f.inserted = append(f.inserted, o)
		inserted = append(inserted, o.Codigo)
	}
	return inserted, nil
}
func (f *fakeOrdenRepo) ListAll(ctx context.Context) ([]*entity.OrdenTrabajo, error) {
	return f.inserted, nil
}

func buildUseCase(existentes ...string) (*ordenes.UseCase, *fakeOrdenRepo) {
	ordenRepo := &fakeOrdenRepo{existentes: map[string]bool{}}
	for _, c := range existentes {
		ordenRepo.existentes[c] = true
	}
	empresaRepo := &fakeEmpresaRepo{empresas: []*entity.EmpresaExterna{
		{ID: 1, Nombre: "CREA INGENIERIA", NombreTOA: "CREA", Active: true},
		{ID: 2, Nombre: "INSTALACIONES TALCA", NombreTOA: "INTA", Active: true},
	}}
	return ordenes.NewUseCase(ordenRepo, empresaRepo), ordenRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AddOrdenesTrabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestAddOrdenesTrabajo_LoteValido(t *testing.T) {
	uc, repo := buildUseCase()

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: "1-2001"},
		{IDEmpresa: 2, Codigo: "1-2002"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1-2001", "1-2002"}, result.Inserted)
	assert.Empty(t, result.NotInserted)
	assert.Empty(t, result.Errors)
	assert.Len(t, repo.inserted, 2)
}

// Un item inválido no aborta a sus hermanos: los válidos se insertan igual.
func TestAddOrdenesTrabajo_ItemInvalidoNoAbortaHermanos(t *testing.T) {
	uc, repo := buildUseCase()

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: ""},                      // codigo vacío
		{IDEmpresa: 99, Codigo: "1-2003"},               // empresa inexistente
		{IDEmpresa: 1, Codigo: "1-2004"},                // válido
		{IDEmpresa: 2, Codigo: strings.Repeat("X", 40)}, // codigo muy largo
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1-2004"}, result.Inserted)
	assert.Len(t, result.Errors, 3)
	assert.Len(t, repo.inserted, 1)
}

// Códigos que ya existían aparecen en not_inserted, no como error.
func TestAddOrdenesTrabajo_DuplicadosEnNotInserted(t *testing.T) {
	uc, _ := buildUseCase("1-3001")

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: "1-3001"},
		{IDEmpresa: 1, Codigo: "1-3002"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1-3002"}, result.Inserted)
	assert.Equal(t, []string{"1-3001"}, result.NotInserted)
	assert.Empty(t, result.Errors)
}

func TestAddOrdenesTrabajo_LoteVacio_RetornaErrInvalidInput(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.AddOrdenesTrabajo(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una falla del storage es falla total del lote, no un resultado parcial.
func TestAddOrdenesTrabajo_FallaDeStorage_PropagaError(t *testing.T) {
	uc, repo := buildUseCase()
	repo.bulkErr = errors.New("connection refused")

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: "1-4001"},
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}

// El código se recorta antes de validar e insertar.
func TestAddOrdenesTrabajo_RecortaEspacios(t *testing.T) {
	uc, repo := buildUseCase()

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: "  1-5001  "},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1-5001"}, result.Inserted)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "1-5001", repo.inserted[0].Codigo)
}

// El límite del código es en caracteres: 30 caracteres acentuados (60 bytes)
// caben dentro de los 32.
func TestAddOrdenesTrabajo_CodigoAcentuadoLargo_EsValido(t *testing.T) {
	uc, _ := buildUseCase()

	codigo := strings.Repeat("é", 30)
	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 1, Codigo: codigo},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{codigo}, result.Inserted)
	assert.Empty(t, result.Errors)
}

// Todos los items inválidos: resultado con errores, sin tocar el storage.
func TestAddOrdenesTrabajo_TodosInvalidos_NoLlamaStorage(t *testing.T) {
	uc, repo := buildUseCase()

	result, err := uc.AddOrdenesTrabajo(context.Background(), []dto.OrdenBulkItem{
		{IDEmpresa: 50, Codigo: "1-6001"},
		{IDEmpresa: 1, Codigo: "   "},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Inserted)
	assert.Len(t, result.Errors, 2)
	assert.Empty(t, repo.inserted)
}
