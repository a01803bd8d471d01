// Package pdf implementa la exportación de reportes a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  Filtros aplicados                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte (grilla de 12)                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: etiqueta / valor alineados a la derecha           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/factory-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.Renderer usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

func (g *MarotoPDFGenerator) ContentType() string { return "application/pdf" }
func (g *MarotoPDFGenerator) Extension() string   { return "pdf" }

// Render genera el PDF horizontal del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(_ context.Context, doc *reports.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(nonEmpty(g.author, "factory-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(doc.Columns))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range tableDetailRows(doc) {
		m.AddRows(r)
	}
	if len(doc.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin registros para los filtros indicados.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range summaryRows(doc.Summary) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + filtros (izq) y fecha de generación (der).
func headerRow(doc *reports.Document) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow(cols []reports.Column) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignOf(c),
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

// tableDetailRows: una fila por registro del reporte.
func tableDetailRows(doc *reports.Document) []core.Row {
	result := make([]core.Row, 0, len(doc.Rows))
	for _, values := range doc.Rows {
		r := row.New(6)
		for i, c := range doc.Columns {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			r.Add(col.New(c.Width).Add(text.New(v, props.Text{
				Size: 8, Align: alignOf(c), Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, r)
	}
	return result
}

// summaryRows: bloque de totales alineado a la derecha.
func summaryRows(lines []reports.SummaryLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(4).Add(text.New(l.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(2).Add(text.New(l.Value, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func alignOf(c reports.Column) align.Type {
	if c.AlignRight {
		return align.Right
	}
	return align.Left
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
