package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/ordenes"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
)

// OrdenHandler maneja la carga masiva y lectura de ordenes de trabajo.
type OrdenHandler struct {
	uc *ordenes.UseCase
}

// NewOrdenHandler construye el handler de ordenes.
func NewOrdenHandler(uc *ordenes.UseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// BulkAdd godoc
// @Summary      Carga masiva de ordenes de trabajo
// @Tags         toa
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.OrdenBulkItem  true  "lote de {id_empresa, codigo}"
// @Success      201   {object}  dto.OrdenBulkResult
// @Failure      400   {object}  dto.OrdenBulkResult
// @Router       /api/toa/add_ordenes_trabajo [post]
func (h *OrdenHandler) BulkAdd(c *fiber.Ctx) error {
	var items []dto.OrdenBulkItem
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido: se espera un array JSON"})
	}
	result, err := h.uc.AddOrdenesTrabajo(c.Context(), items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		// Falla del storage: todo el lote se descarta.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Lote con solo errores de validación: 400 con el detalle por item.
	if len(result.Inserted) == 0 && len(result.NotInserted) == 0 && len(result.Errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListAll godoc
// @Summary      Dump completo de ordenes de trabajo (PowerBI)
// @Tags         powerbi
// @Produce      json
// @Success      200  {object}  dto.OrdenListResponse
// @Router       /api/toa/ordenes_trabajo [get]
func (h *OrdenHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.GetAllOrdenes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
