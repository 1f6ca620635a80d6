package http

import (
	"errors"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/toa-ordenes-api/internal/application/comentarios"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/pkg/logger"
)

// Placeholder provee los bytes de imagen por defecto para comentarios sin
// fotografía (endpoint PowerBI).
type Placeholder interface {
	Placeholder() (data []byte, contentType string)
}

// ComentarioHandler maneja los comentarios de ordenes de trabajo y sus imágenes.
type ComentarioHandler struct {
	uc          *comentarios.UseCase
	placeholder Placeholder
	log         *logger.Logger
}

// NewComentarioHandler construye el handler de comentarios.
func NewComentarioHandler(uc *comentarios.UseCase, placeholder Placeholder, log *logger.Logger) *ComentarioHandler {
	return &ComentarioHandler{uc: uc, placeholder: placeholder, log: log}
}

// GetCount godoc
// @Summary      Resumen de la orden y conteo de comentarios
// @Tags         comentarios
// @Produce      json
// @Param        codigo  path  string  true  "código de la orden"
// @Success      200  {object}  dto.ComentariosCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toa/comentarios/{codigo} [get]
func (h *ComentarioHandler) GetCount(c *fiber.Ctx) error {
	out, err := h.uc.GetComentariosCount(c.Context(), GetUserID(c), c.Params("codigo"))
	if err != nil {
		return comentarioError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Comentarios de una orden, más reciente primero
// @Tags         comentarios
// @Produce      json
// @Param        codigo  path  string  true  "código de la orden"
// @Success      200  {object}  dto.ComentarioListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toa/comentarios/{codigo}/lista [get]
func (h *ComentarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetComentarios(c.Context(), GetUserID(c), c.Params("codigo"))
	if err != nil {
		return comentarioError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un comentario (multipart: comentario, num_ticket, imagen opcional)
// @Tags         comentarios
// @Accept       mpfd
// @Produce      json
// @Param        codigo  path  string  true  "código de la orden"
// @Success      201  {object}  dto.ComentarioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toa/comentarios/{codigo} [post]
func (h *ComentarioHandler) Add(c *fiber.Ctx) error {
	var in dto.AddComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}

	var upload *comentarios.ImageUpload
	if file, err := c.FormFile("imagen"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "no se pudo leer la imagen"})
		}
		defer f.Close()
		upload = &comentarios.ImageUpload{Filename: file.Filename, Size: file.Size, Reader: f}
	}

	out, err := h.uc.AddComentario(c.Context(), GetUserID(c), c.Params("codigo"), in, upload)
	if err != nil {
		return comentarioError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetImagen godoc
// @Summary      Imagen de un comentario (autorizada por orden)
// @Tags         comentarios
// @Produce      image/jpeg
// @Param        id  path  int  true  "id del comentario"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comentarios/{id}/imagen [get]
func (h *ComentarioHandler) GetImagen(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	comentario, err := h.uc.AuthorizeComentarioImagen(c.Context(), GetUserID(c), id)
	if err != nil {
		return comentarioError(c, err)
	}
	if comentario.ImagenPath == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el comentario no tiene imagen"})
	}
	data, err := os.ReadFile(comentario.ImagenPath)
	if err != nil {
		h.log.Error().Err(err).Int64("comentario", comentario.ID).Str("path", comentario.ImagenPath).Msg("imagen de comentario ilegible")
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "imagen no disponible"})
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}

// GetImagenBI godoc
// @Summary      Imagen de un comentario para PowerBI: siempre 200
// @Tags         powerbi
// @Produce      image/jpeg
// @Param        id  path  int  true  "id del comentario"
// @Success      200  {file}  binary
// @Router       /api/toa/powerbi/comentarios/imagen/{id} [get]
func (h *ComentarioHandler) GetImagenBI(c *fiber.Ctx) error {
	// PowerBI rompe el reporte entero ante un 404 en una celda de imagen:
	// este endpoint responde 200 con un placeholder ante cualquier falla.
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return h.sendPlaceholder(c)
	}
	comentario, err := h.uc.GetComentarioConImagen(c.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("comentario", id).Msg("buscar comentario para imagen BI")
		return h.sendPlaceholder(c)
	}
	if comentario == nil || comentario.ImagenPath == "" {
		return h.sendPlaceholder(c)
	}
	data, err := os.ReadFile(comentario.ImagenPath)
	if err != nil {
		h.log.Error().Err(err).Int64("comentario", id).Str("path", comentario.ImagenPath).Msg("imagen de comentario ilegible")
		return h.sendPlaceholder(c)
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}

func (h *ComentarioHandler) sendPlaceholder(c *fiber.Ctx) error {
	data, contentType := h.placeholder.Placeholder()
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// SoftDelete godoc
// @Summary      Eliminar (soft) un comentario
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "id del comentario"
// @Success      200  {object}  dto.OperationResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/comentarios/{id} [delete]
func (h *ComentarioHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.SoftDelete(c.Context(), id); err != nil {
		return comentarioError(c, err)
	}
	return c.JSON(dto.OperationResult{Success: true, Message: "comentario eliminado", ID: id})
}

// Restore godoc
// @Summary      Restaurar un comentario eliminado
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "id del comentario"
// @Success      200  {object}  dto.OperationResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/comentarios/{id}/restore [post]
func (h *ComentarioHandler) Restore(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Restore(c.Context(), id); err != nil {
		return comentarioError(c, err)
	}
	return c.JSON(dto.OperationResult{Success: true, Message: "comentario restaurado", ID: id})
}

// ListInactive godoc
// @Summary      Comentarios eliminados, paginado
// @Tags         admin
// @Produce      json
// @Param        page      query  int  false  "página (desde 1)"
// @Param        per_page  query  int  false  "tamaño de página [5,100]"
// @Success      200  {array}  dto.ComentarioResponse
// @Router       /api/admin/comentarios/inactivos [get]
func (h *ComentarioHandler) ListInactive(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.ListInactive(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListAllBI godoc
// @Summary      Dump completo de comentarios (PowerBI)
// @Tags         powerbi
// @Produce      json
// @Success      200  {object}  dto.ComentarioDumpResponse
// @Router       /api/toa/comentarios [get]
func (h *ComentarioHandler) ListAllBI(c *fiber.Ctx) error {
	out, err := h.uc.GetAllComentarios(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func comentarioError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autorizado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
