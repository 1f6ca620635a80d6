package entity

import "time"

// Límites de validación para comentarios.
const (
	ComentarioMaxLen = 256
	NumTicketMaxLen  = 32
)

// Comentario es una nota con número de ticket, opcionalmente con fotografía,
// adjunta a una orden de trabajo. Soft-delete independiente de su orden.
type Comentario struct {
	ID                   int64
	UUID                 string
	Comentario           string
	NumTicket            string
	IDOrdenTrabajo       int64
	IDUsuario            int64
	ImagenPath           string // vacío = sin imagen
	ImagenNombreOriginal string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Active               bool
}
