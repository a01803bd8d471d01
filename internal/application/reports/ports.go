package reports

import (
	"context"
	"time"
)

// Column columna de un documento exportado. Width usa la grilla de 12 columnas.
type Column struct {
	Header     string
	Width      int
	AlignRight bool
}

// SummaryLine par etiqueta/valor al pie del reporte.
type SummaryLine struct {
	Label string
	Value string
}

// Document representación tabular de un reporte, independiente del formato de salida.
type Document struct {
	Title       string
	Subtitle    string // filtros aplicados
	Columns     []Column
	Rows        [][]string
	Summary     []SummaryLine
	GeneratedAt time.Time
}

// Renderer genera los bytes de un Document en un formato concreto (PDF, XLSX).
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
	ContentType() string
	Extension() string
}
