package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
	apphttp "github.com/jhoicas/toa-ordenes-api/internal/interfaces/http"
	"github.com/jhoicas/toa-ordenes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type histEmpresaStub struct{}

func (histEmpresaStub) Create(ctx context.Context, e *entity.EmpresaExterna) error { return nil }
func (histEmpresaStub) GetByID(ctx context.Context, id int64) (*entity.EmpresaExterna, error) {
	return nil, nil
}
func (histEmpresaStub) ListActive(ctx context.Context) ([]*entity.EmpresaExterna, error) {
	return []*entity.EmpresaExterna{
		{ID: 1, Nombre: "CREA INGENIERIA", NombreTOA: "CREA", Active: true},
	}, nil
}
func (histEmpresaStub) List(ctx context.Context, limit, offset int) ([]*entity.EmpresaExterna, error) {
	return nil, nil
}

type histRepoStub struct {
	inserted []*entity.HistoriaOT
}

func (s *histRepoStub) Insert(ctx context.Context, r *entity.HistoriaOT) error {
	s.inserted = append(s.inserted, r)
	return nil
}
func (s *histRepoStub) ListByZona(ctx context.Context, z entity.Zona) ([]*entity.HistoriaOT, error) {
	return nil, nil
}
func (s *histRepoStub) ListByEmpresa(ctx context.Context, e string) ([]*entity.HistoriaOT, error) {
	return nil, nil
}
func (s *histRepoStub) ListByRangoFecha(ctx context.Context, ini, fin string) ([]*entity.HistoriaOT, error) {
	return nil, nil
}

type histTxStub struct {
	repo *histRepoStub
}

func (s *histTxStub) Run(ctx context.Context, fn func(repo repository.HistoriaOTRepository) error) error {
	return fn(s.repo)
}

func buildImportApp(logBuf *bytes.Buffer) (*fiber.App, *histRepoStub) {
	repo := &histRepoStub{}
	uc := historia.NewUseCase(&histTxStub{repo: repo}, repo, histEmpresaStub{})
	log := logger.New(logger.Config{Level: "info", Writer: logBuf})
	handler := apphttp.NewHistoriaHandler(uc, log)

	app := fiber.New()
	app.Post("/import/:zona", handler.ImportZona)
	return app, repo
}

func postImport(t *testing.T, app *fiber.App, zona, body string) *dto.HistoriaImportResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/import/"+zona, bytes.NewReader([]byte(body)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.HistoriaImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ImportZona
// ──────────────────────────────────────────────────────────────────────────────

// El resumen de la ingesta queda en el log con campos estructurados.
func TestImportZona_LogueaResumenDelLote(t *testing.T) {
	var logBuf bytes.Buffer
	app, _ := buildImportApp(&logBuf)

	out := postImport(t, app, "sur", `[
		{"Orden_de_Trabajo":"1-1","Técnico":"JUAN CREA SUR"},
		{"Orden_de_Trabajo":"1-2","Técnico":"SIN EMPRESA"}
	]`)

	assert.Equal(t, 1, out.Procesadas)
	assert.Len(t, out.NoIngresadas, 1)

	logLine := logBuf.String()
	assert.Contains(t, logLine, "lote de historia procesado")
	assert.Contains(t, logLine, `"zona":"sur"`)
	assert.Contains(t, logLine, `"procesadas":1`)
	assert.Contains(t, logLine, `"no_ingresadas":1`)
}

// Un registro con Técnico ausente o null decodifica a cadena vacía: nunca
// calza, termina en no_ingresadas y no rompe el lote.
func TestImportZona_TecnicoAusenteONull_TerminaEnNoIngresadas(t *testing.T) {
	var logBuf bytes.Buffer
	app, repo := buildImportApp(&logBuf)

	out := postImport(t, app, "sur", `[
		{"Orden_de_Trabajo":"1-A","Técnico":null},
		{"Orden_de_Trabajo":"1-B"},
		{"Orden_de_Trabajo":"1-C","Técnico":"MARIA CREA"}
	]`)

	assert.Equal(t, 3, out.TotalRecibido)
	assert.Equal(t, 1, out.Procesadas)
	require.Len(t, out.NoIngresadas, 2)
	assert.Equal(t, "1-A", out.NoIngresadas[0].OrdenDeTrabajo)
	assert.Equal(t, "1-B", out.NoIngresadas[1].OrdenDeTrabajo)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "1-C", repo.inserted[0].OrdenDeTrabajo)
}
