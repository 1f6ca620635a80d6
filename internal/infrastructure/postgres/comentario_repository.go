package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/toa-ordenes-api/internal/domain/entity"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

var _ repository.ComentarioRepository = (*ComentarioRepo)(nil)

// ComentarioRepo implementación del puerto ComentarioRepository sobre PostgreSQL.
type ComentarioRepo struct {
	q Querier
}

// NewComentarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComentarioRepository(q Querier) *ComentarioRepo {
	return &ComentarioRepo{q: q}
}

const comentarioColumns = `id, uuid, comentario, num_ticket, id_orden_trabajo, id_usuario,
	imagen_path, imagen_nombre_original, created_at, updated_at, active`

// Create persiste un comentario nuevo.
func (r *ComentarioRepo) Create(ctx context.Context, c *entity.Comentario) error {
	query := `
		INSERT INTO comentarios (uuid, comentario, num_ticket, id_orden_trabajo, id_usuario,
			imagen_path, imagen_nombre_original, created_at, updated_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.UUID, c.Comentario, c.NumTicket, c.IDOrdenTrabajo, c.IDUsuario,
		c.ImagenPath, c.ImagenNombreOriginal, c.CreatedAt, c.UpdatedAt, c.Active,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert comentario: %w", err)
	}
	return nil
}

// GetByID obtiene un comentario activo por id. Devuelve nil, nil si no existe.
func (r *ComentarioRepo) GetByID(ctx context.Context, id int64) (*entity.Comentario, error) {
	query := `SELECT ` + comentarioColumns + ` FROM comentarios WHERE id = $1 AND active = TRUE`
	c, err := scanComentario(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comentario by id: %w", err)
	}
	return c, nil
}

// GetByIDAny obtiene un comentario por id sin filtrar por active (administración
// y servicio de imágenes BI).
func (r *ComentarioRepo) GetByIDAny(ctx context.Context, id int64) (*entity.Comentario, error) {
	query := `SELECT ` + comentarioColumns + ` FROM comentarios WHERE id = $1`
	c, err := scanComentario(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comentario by id: %w", err)
	}
	return c, nil
}

// ListByOrden comentarios activos de una orden, más reciente primero.
func (r *ComentarioRepo) ListByOrden(ctx context.Context, idOrdenTrabajo int64) ([]*entity.Comentario, error) {
	query := `SELECT ` + comentarioColumns + ` FROM comentarios
		WHERE id_orden_trabajo = $1 AND active = TRUE ORDER BY created_at DESC`
	return r.queryMany(ctx, query, idOrdenTrabajo)
}

// CountByOrden conteo de comentarios activos de una orden.
func (r *ComentarioRepo) CountByOrden(ctx context.Context, idOrdenTrabajo int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM comentarios WHERE id_orden_trabajo = $1 AND active = TRUE`,
		idOrdenTrabajo,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comentarios: %w", err)
	}
	return count, nil
}

// ListAll todos los comentarios activos, más reciente primero (API de lectura).
func (r *ComentarioRepo) ListAll(ctx context.Context) ([]*entity.Comentario, error) {
	query := `SELECT ` + comentarioColumns + ` FROM comentarios WHERE active = TRUE ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

// ListInactive comentarios eliminados con paginación (administración).
func (r *ComentarioRepo) ListInactive(ctx context.Context, limit, offset int) ([]*entity.Comentario, error) {
	query := `SELECT ` + comentarioColumns + ` FROM comentarios
		WHERE active = FALSE ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

// SetActive cambia el flag de soft-delete y avanza updated_at.
func (r *ComentarioRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE comentarios SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set comentario active: %w", err)
	}
	return nil
}

func (r *ComentarioRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Comentario, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comentario
	for rows.Next() {
		c, err := scanComentario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanComentario(row pgxScanner) (*entity.Comentario, error) {
	var c entity.Comentario
	err := row.Scan(
		&c.ID, &c.UUID, &c.Comentario, &c.NumTicket, &c.IDOrdenTrabajo, &c.IDUsuario,
		&c.ImagenPath, &c.ImagenNombreOriginal, &c.CreatedAt, &c.UpdatedAt, &c.Active,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
