package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/usecase"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeEmpresaRepo captura los argumentos de paginación que recibe List.
type fakeEmpresaRepo struct {
	empresas   []*entity.EmpresaExterna
	gotLimit   int
	gotOffset  int
	listCalled bool
}

func (f *fakeEmpresaRepo) Create(ctx context.Context, e *entity.EmpresaExterna) error {
	e.ID = int64(len(f.empresas) + 1)
	f.empresas = append(f.empresas, e)
	return nil
}
func (f *fakeEmpresaRepo) GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error) {
	for _, e := range f.empresas {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (f *fakeEmpresaRepo) ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error) {
	return f.empresas, nil
}
func (f *fakeEmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error) {
	f.listCalled = true
	f.gotLimit = limit
	f.gotOffset = offset
	if offset >= len(f.empresas) {
		return []*entity.EmpresaExterna{}, nil
	}
	end := offset + limit
	if end > len(f.empresas) {
		end = len(f.empresas)
	}
	return f.empresas[offset:end], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List — paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresaList_PaginaYLimiteLleganAlRepo(t *testing.T) {
	repo := &fakeEmpresaRepo{}
	uc := usecase.NewEmpresaUseCase(repo)

	_, err := uc.List(context.Background(), dto.PageRequest{Page: 3, PerPage: 10})
	require.NoError(t, err)

	assert.True(t, repo.listCalled)
	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, 20, repo.gotOffset)
}

// per_page se acota a [5,100] y page a partir de 1.
func TestEmpresaList_ClampDePaginacion(t *testing.T) {
	repo := &fakeEmpresaRepo{}
	uc := usecase.NewEmpresaUseCase(repo)

	_, err := uc.List(context.Background(), dto.PageRequest{Page: 0, PerPage: 500})
	require.NoError(t, err)

	assert.Equal(t, dto.MaxPerPage, repo.gotLimit)
	assert.Equal(t, 0, repo.gotOffset)

	_, err = uc.List(context.Background(), dto.PageRequest{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, dto.MinPerPage, repo.gotLimit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresaCreate_NombreTOAVacio_RetornaErrInvalidInput(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(&fakeEmpresaRepo{})

	_, err := uc.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre: "CREA INGENIERIA", NombreTOA: "   ", RUT: "76.111.111-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmpresaGetByID_Inexistente_RetornaErrNotFound(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(&fakeEmpresaRepo{})

	_, err := uc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
