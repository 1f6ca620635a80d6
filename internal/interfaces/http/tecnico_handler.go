package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/application/tecnicos"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
)

// TecnicoHandler maneja los técnicos/supervisores de la empresa del usuario.
type TecnicoHandler struct {
	uc *tecnicos.UseCase
}

// NewTecnicoHandler construye el handler de técnicos.
func NewTecnicoHandler(uc *tecnicos.UseCase) *TecnicoHandler {
	return &TecnicoHandler{uc: uc}
}

// Add godoc
// @Summary      Alta masiva de técnicos para la empresa del usuario
// @Tags         tecnicos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddTecnicosRequest  true  "lista de técnicos"
// @Success      201  {object}  dto.AddTecnicosResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/toa/tecnicos [post]
func (h *TecnicoHandler) Add(c *fiber.Ctx) error {
	var in dto.AddTecnicosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddTecnicos(c.Context(), GetUserID(c), in)
	if err != nil {
		return tecnicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Técnicos de la empresa del usuario
// @Tags         tecnicos
// @Produce      json
// @Success      200  {object}  dto.TecnicosEmpresaResponse
// @Router       /api/toa/tecnicos [get]
func (h *TecnicoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetTecnicosForUserEmpresa(c.Context(), GetUserID(c))
	if err != nil {
		return tecnicoError(c, err)
	}
	return c.JSON(out)
}

// ListAllBI godoc
// @Summary      Dump completo de técnicos/supervisores (PowerBI)
// @Tags         powerbi
// @Produce      json
// @Success      200  {object}  dto.TecnicoDumpResponse
// @Router       /api/toa/tecnicos_supervisores [get]
func (h *TecnicoHandler) ListAllBI(c *fiber.Ctx) error {
	out, err := h.uc.GetAllTecnicos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func tecnicoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autorizado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
