package comentarios

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

// Mensaje único para orden inexistente y orden sin acceso: un usuario no
// autorizado no debe poder distinguir si la orden existe.
const ordenAccessDeniedFmt = "orden de trabajo '%s' no encontrada o el usuario no tiene acceso"

// UseCase media la creación y el listado de comentarios sobre ordenes de
// trabajo, aplicando la visibilidad por empresa asignada.
type UseCase struct {
	comentarioRepo repository.ComentarioRepository
	ordenRepo      repository.OrdenTrabajoRepository
	userRepo       repository.UserRepository
	images         ImageStore
}

// NewUseCase construye el caso de uso de comentarios.
func NewUseCase(
	comentarioRepo repository.ComentarioRepository,
	ordenRepo repository.OrdenTrabajoRepository,
	userRepo repository.UserRepository,
	images ImageStore,
) *UseCase {
	return &UseCase{
		comentarioRepo: comentarioRepo,
		ordenRepo:      ordenRepo,
		userRepo:       userRepo,
		images:         images,
	}
}

// resolveOrden busca la orden por código y autoriza al usuario: admin (usuario
// dev o rol admin) accede a todo; el resto requiere que la empresa de la orden
// esté entre sus empresas asignadas. Ambos fallos devuelven el mismo error.
func (uc *UseCase) resolveOrden(ctx context.Context, user *entity.User, codigo string) (*entity.OrdenTrabajo, error) {
	orden, err := uc.ordenRepo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("buscar orden de trabajo: %w", err)
	}
	if orden == nil || (!user.IsAdmin() && !user.HasEmpresa(orden.IDEmpresa)) {
		return nil, fmt.Errorf(ordenAccessDeniedFmt+": %w", codigo, domain.ErrNotFound)
	}
	return orden, nil
}

func (uc *UseCase) loadUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", userID, domain.ErrUnauthorized)
	}
	return user, nil
}

// AddComentario valida, autoriza y persiste un comentario nuevo, procesando la
// imagen adjunta si viene. Una falla del pipeline de imágenes aborta la
// creación (no quedan comentarios sin su imagen esperada); una falla del
// insert elimina, con mejor esfuerzo, el archivo ya escrito.
func (uc *UseCase) AddComentario(ctx context.Context, userID int64, codigoOrden string, in dto.AddComentarioRequest, imagen *ImageUpload) (*dto.ComentarioResponse, error) {
	texto := strings.TrimSpace(in.Comentario)
	numTicket := strings.TrimSpace(in.NumTicket)

	if texto == "" || numTicket == "" {
		return nil, fmt.Errorf("%w: tanto 'comentario' como 'num_ticket' son requeridos y no pueden estar vacíos", domain.ErrInvalidInput)
	}
	// Los límites son en caracteres, no bytes: los acentos no restan cupo.
	if utf8.RuneCountInString(texto) > entity.ComentarioMaxLen {
		return nil, fmt.Errorf("%w: el comentario no puede exceder los %d caracteres", domain.ErrInvalidInput, entity.ComentarioMaxLen)
	}
	if utf8.RuneCountInString(numTicket) > entity.NumTicketMaxLen {
		return nil, fmt.Errorf("%w: el número de ticket no puede exceder los %d caracteres", domain.ErrInvalidInput, entity.NumTicketMaxLen)
	}

	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orden, err := uc.resolveOrden(ctx, user, codigoOrden)
	if err != nil {
		return nil, err
	}

	var imagenPath, imagenNombre string
	if imagen != nil {
		imagenPath, err = uc.images.Save(*imagen)
		if err != nil {
			return nil, err
		}
		imagenNombre = imagen.Filename
	}

	now := time.Now()
	comentario := &entity.Comentario{
		UUID:                 uuid.New().String(),
		Comentario:           texto,
		NumTicket:            numTicket,
		IDOrdenTrabajo:       orden.ID,
		IDUsuario:            user.ID,
		ImagenPath:           imagenPath,
		ImagenNombreOriginal: imagenNombre,
		CreatedAt:            now,
		UpdatedAt:            now,
		Active:               true,
	}
	if err := uc.comentarioRepo.Create(ctx, comentario); err != nil {
		if imagenPath != "" {
			_ = uc.images.Delete(imagenPath)
		}
		return nil, fmt.Errorf("crear el comentario: %w", err)
	}
	return toComentarioResponse(comentario), nil
}

// GetComentariosCount devuelve el resumen de la orden y el conteo de
// comentarios activos (la página del formulario no renderiza las filas).
func (uc *UseCase) GetComentariosCount(ctx context.Context, userID int64, codigoOrden string) (*dto.ComentariosCountResponse, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orden, err := uc.resolveOrden(ctx, user, codigoOrden)
	if err != nil {
		return nil, err
	}
	count, err := uc.comentarioRepo.CountByOrden(ctx, orden.ID)
	if err != nil {
		return nil, fmt.Errorf("contar comentarios: %w", err)
	}
	return &dto.ComentariosCountResponse{
		OrdenTrabajo:     ordenSummary(orden),
		ComentariosCount: count,
	}, nil
}

// GetComentarios devuelve los comentarios activos de la orden, más reciente primero.
func (uc *UseCase) GetComentarios(ctx context.Context, userID int64, codigoOrden string) (*dto.ComentarioListResponse, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orden, err := uc.resolveOrden(ctx, user, codigoOrden)
	if err != nil {
		return nil, err
	}
	list, err := uc.comentarioRepo.ListByOrden(ctx, orden.ID)
	if err != nil {
		return nil, fmt.Errorf("listar comentarios: %w", err)
	}
	items := make([]dto.ComentarioResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toComentarioResponse(c))
	}
	return &dto.ComentarioListResponse{
		OrdenTrabajo: ordenSummary(orden),
		Comentarios:  items,
	}, nil
}

// GetAllComentarios dump completo de comentarios activos para la API de lectura.
func (uc *UseCase) GetAllComentarios(ctx context.Context) (*dto.ComentarioDumpResponse, error) {
	list, err := uc.comentarioRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar comentarios: %w", err)
	}
	items := make([]dto.ComentarioResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toComentarioResponse(c))
	}
	return &dto.ComentarioDumpResponse{Comentarios: items, Total: len(items)}, nil
}

// GetComentarioConImagen carga el comentario (activo o no) para servir su
// imagen; la autorización a nivel de orden la decide el caller según la
// variante del endpoint.
func (uc *UseCase) GetComentarioConImagen(ctx context.Context, id int64) (*entity.Comentario, error) {
	return uc.comentarioRepo.GetByIDAny(ctx, id)
}

// AuthorizeComentarioImagen verifica que el usuario pueda ver la orden del
// comentario antes de entregar los bytes de la imagen.
func (uc *UseCase) AuthorizeComentarioImagen(ctx context.Context, userID, comentarioID int64) (*entity.Comentario, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	comentario, err := uc.comentarioRepo.GetByID(ctx, comentarioID)
	if err != nil {
		return nil, fmt.Errorf("buscar comentario: %w", err)
	}
	if comentario == nil {
		return nil, fmt.Errorf("comentario %d: %w", comentarioID, domain.ErrNotFound)
	}
	if !user.IsAdmin() {
		orden, err := uc.ordenRepo.GetByID(ctx, comentario.IDOrdenTrabajo)
		if err != nil {
			return nil, fmt.Errorf("buscar orden de trabajo: %w", err)
		}
		// Mismo error que "no existe": no filtrar existencia a usuarios sin acceso.
		if orden == nil || !user.HasEmpresa(orden.IDEmpresa) {
			return nil, fmt.Errorf("comentario %d: %w", comentarioID, domain.ErrNotFound)
		}
	}
	return comentario, nil
}

// SoftDelete marca un comentario como inactivo. Falla con ErrNotFound si el id
// no existe y con ErrConflict si ya estaba inactivo.
func (uc *UseCase) SoftDelete(ctx context.Context, id int64) error {
	comentario, err := uc.comentarioRepo.GetByIDAny(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar comentario: %w", err)
	}
	if comentario == nil {
		return fmt.Errorf("comentario %d: %w", id, domain.ErrNotFound)
	}
	if !comentario.Active {
		return fmt.Errorf("el comentario %d ya está eliminado: %w", id, domain.ErrConflict)
	}
	if err := uc.comentarioRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("eliminar comentario: %w", err)
	}
	return nil
}

// Restore reactiva un comentario eliminado. Falla con ErrNotFound si el id no
// existe y con ErrConflict si ya estaba activo.
func (uc *UseCase) Restore(ctx context.Context, id int64) error {
	comentario, err := uc.comentarioRepo.GetByIDAny(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar comentario: %w", err)
	}
	if comentario == nil {
		return fmt.Errorf("comentario %d: %w", id, domain.ErrNotFound)
	}
	if comentario.Active {
		return fmt.Errorf("el comentario %d ya está activo: %w", id, domain.ErrConflict)
	}
	if err := uc.comentarioRepo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("restaurar comentario: %w", err)
	}
	return nil
}

// ListInactive comentarios eliminados, paginado (vista de administración).
func (uc *UseCase) ListInactive(ctx context.Context, page dto.PageRequest) ([]dto.ComentarioResponse, error) {
	page.Clamp()
	list, err := uc.comentarioRepo.ListInactive(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar comentarios inactivos: %w", err)
	}
	items := make([]dto.ComentarioResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toComentarioResponse(c))
	}
	return items, nil
}

func ordenSummary(o *entity.OrdenTrabajo) dto.OrdenSummary {
	return dto.OrdenSummary{ID: o.ID, Codigo: o.Codigo, IDEmpresa: o.IDEmpresa}
}

func toComentarioResponse(c *entity.Comentario) *dto.ComentarioResponse {
	return &dto.ComentarioResponse{
		ID:         c.ID,
		Comentario: c.Comentario,
		NumTicket:  c.NumTicket,
		IDUsuario:  c.IDUsuario,
		TieneImg:   c.ImagenPath != "",
		CreatedAt:  c.CreatedAt,
	}
}
