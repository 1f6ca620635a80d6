package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/pkg/logger"
)

// HistoriaHandler maneja la ingesta y consulta de historia TOA.
type HistoriaHandler struct {
	uc  *historia.UseCase
	log *logger.Logger
}

// NewHistoriaHandler construye el handler de historia.
func NewHistoriaHandler(uc *historia.UseCase, log *logger.Logger) *HistoriaHandler {
	return &HistoriaHandler{uc: uc, log: log}
}

// ImportZona godoc
// @Summary      Importar lote de historia TOA para una zona
// @Tags         toa
// @Accept       mpfd
// @Produce      json
// @Param        zona  path  string  true  "sur|norte|centro|metropolitana (o alias en inglés)"
// @Param        file  formData  file  true  "archivo JSON con el array de registros"
// @Success      200  {object}  dto.HistoriaImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/toa/set_data_toa_historia/{zona} [post]
func (h *HistoriaHandler) ImportZona(c *fiber.Ctx) error {
	zona := entity.ParseZona(c.Params("zona"))
	if zona == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ZONA", Message: fmt.Sprintf("zona desconocida: %q", c.Params("zona"))})
	}

	raw, err := h.batchPayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}

	// Solo la falla de decodificación del lote completo rechaza la carga;
	// claves ausentes en un registro decodifican a cadena vacía.
	var registros []dto.RegistroHistoria
	if err := json.Unmarshal(raw, &registros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_JSON", Message: "el archivo no contiene un array JSON válido"})
	}

	noIngresadas, err := h.uc.ProcessZoneBatch(c.Context(), zona, registros)
	if err != nil {
		h.log.Error().Err(err).Str("zona", string(zona)).Int("registros", len(registros)).Msg("ingesta de historia fallida")
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	h.log.Info().
		Str("zona", string(zona)).
		Int("recibidos", len(registros)).
		Int("procesadas", len(registros)-len(noIngresadas)).
		Int("no_ingresadas", len(noIngresadas)).
		Msg("lote de historia procesado")

	return c.JSON(dto.HistoriaImportResult{
		Message:       "lote procesado",
		Procesadas:    len(registros) - len(noIngresadas),
		NoIngresadas:  noIngresadas,
		TotalRecibido: len(registros),
	})
}

// batchPayload devuelve los bytes del lote: el archivo multipart "file" si
// viene, o el cuerpo crudo de la request.
func (h *HistoriaHandler) batchPayload(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("no se pudo abrir el archivo")
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("no se pudo leer el archivo")
		}
		return raw, nil
	}
	if len(c.Body()) == 0 {
		return nil, fmt.Errorf("se requiere el archivo 'file' o un cuerpo JSON")
	}
	return c.Body(), nil
}

// SetEmpresa godoc
// @Summary      Registrar una empresa externa (ingesta)
// @Tags         toa
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "nombre, nombre_toa, rut"
// @Success      201  {object}  dto.OperationResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/toa/set_empresas_externas [post]
func (h *HistoriaHandler) SetEmpresa(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetEmpresaExterna(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la empresa ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OperationResult{Success: true, Message: "empresa externa registrada"})
}
