// Package xlsx implementa la exportación de reportes a Excel con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/factory-api/internal/application/reports"
)

const (
	sheetName = "Sheet1"
	headerRow = 4 // fila 1 título, fila 2 filtros, fila 4 encabezados
)

// ExcelRenderer implementa reports.Renderer.
type ExcelRenderer struct{}

// NewExcelRenderer construye el renderer.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render escribe título, filtros, encabezados, filas y resumen en la primera hoja.
func (r *ExcelRenderer) Render(_ context.Context, doc *reports.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}

	if err := setCell(f, 1, 1, doc.Title, title); err != nil {
		return nil, err
	}
	if err := setCell(f, 1, 2, doc.Subtitle, 0); err != nil {
		return nil, err
	}

	for i, c := range doc.Columns {
		if err := setCell(f, i+1, headerRow, c.Header, bold); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, float64(6*c.Width+4)); err != nil {
			return nil, err
		}
	}

	rowNo := headerRow + 1
	for _, values := range doc.Rows {
		for i, v := range values {
			if err := setCell(f, i+1, rowNo, v, 0); err != nil {
				return nil, err
			}
		}
		rowNo++
	}

	rowNo++
	for _, l := range doc.Summary {
		if err := setCell(f, 1, rowNo, l.Label, bold); err != nil {
			return nil, err
		}
		if err := setCell(f, 2, rowNo, l.Value, 0); err != nil {
			return nil, err
		}
		rowNo++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell escribe value en (col, row) 1-based; style 0 deja el estilo por defecto.
func setCell(f *excelize.File, col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(sheetName, cell, cell, style)
}
