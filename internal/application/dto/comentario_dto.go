package dto

import "time"

// AddComentarioRequest campos de formulario para agregar un comentario.
type AddComentarioRequest struct {
	Comentario string `form:"comentario"`
	NumTicket  string `form:"num_ticket"`
}

// OrdenSummary resumen de la orden para la vista de comentarios.
type OrdenSummary struct {
	ID        int64  `json:"id"`
	Codigo    string `json:"codigo"`
	IDEmpresa int64  `json:"id_empresa"`
}

// ComentarioResponse representación de un comentario.
type ComentarioResponse struct {
	ID         int64     `json:"id"`
	Comentario string    `json:"comentario"`
	NumTicket  string    `json:"num_ticket"`
	IDUsuario  int64     `json:"id_usuario"`
	TieneImg   bool      `json:"tiene_imagen"`
	CreatedAt  time.Time `json:"created_at"`
}

// ComentariosCountResponse resumen de la orden más el conteo de comentarios
// activos (la página del formulario no necesita las filas).
type ComentariosCountResponse struct {
	OrdenTrabajo     OrdenSummary `json:"orden_trabajo"`
	ComentariosCount int          `json:"comentarios_count"`
}

// ComentarioListResponse comentarios de una orden, más reciente primero.
type ComentarioListResponse struct {
	OrdenTrabajo OrdenSummary         `json:"orden_trabajo"`
	Comentarios  []ComentarioResponse `json:"comentarios"`
}

// ComentarioDumpResponse dump completo para la API de lectura (PowerBI).
type ComentarioDumpResponse struct {
	Comentarios []ComentarioResponse `json:"comentarios"`
	Total       int                  `json:"total"`
}
