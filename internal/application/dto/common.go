package dto

// PageRequest paginación por página (activity logs).
type PageRequest struct {
	Page    int `query:"page" validate:"min=0"`
	PerPage int `query:"per_page" validate:"min=0,max=500"`
}

// DefaultPage aplica valores por defecto si Page/PerPage son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 50
	}
}

// Offset desplazamiento correspondiente a la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// NewPageResponse calcula el número de páginas para el total dado.
func NewPageResponse(p PageRequest, total int) PageResponse {
	pages := 0
	if p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return PageResponse{Total: total, Pages: pages, CurrentPage: p.Page, PerPage: p.PerPage}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // campo -> regla incumplida (VALIDATION)
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// DateLayout formato de fechas de entrada/salida (deadline, order_date, ...).
const DateLayout = "2006-01-02"
