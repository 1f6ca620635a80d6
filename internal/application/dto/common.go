package dto

// Límites de paginación para vistas de administración.
const (
	MinPerPage     = 5
	MaxPerPage     = 100
	DefaultPerPage = 20
)

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Clamp aplica valores por defecto y acota per_page a [MinPerPage, MaxPerPage].
func (p *PageRequest) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage < MinPerPage {
		p.PerPage = MinPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Limit devuelve el límite SQL equivalente.
func (p PageRequest) Limit() int { return p.PerPage }

// Offset devuelve el offset SQL equivalente.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
