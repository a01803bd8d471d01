package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/factory-api/internal/application/reports"
)

func TestRender_WritesTableAndSummary(t *testing.T) {
	doc := &reports.Document{
		Title:    "Reporte de órdenes de compra",
		Subtitle: "Proveedor: Steel Co",
		Columns:  []reports.Column{{Header: "OC", Width: 2}, {Header: "Costo total", Width: 10, AlignRight: true}},
		Rows:     [][]string{{"PO-0001", "250.00"}, {"PO-0002", "80.00"}},
		Summary:  []reports.SummaryLine{{Label: "Costo total", Value: "330.00"}},
	}

	out, err := NewExcelRenderer().Render(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, doc.Title, get("A1"))
	assert.Equal(t, "Proveedor: Steel Co", get("A2"))
	assert.Equal(t, "OC", get("A4"))
	assert.Equal(t, "PO-0002", get("A6"))
	assert.Equal(t, "250.00", get("B5"))
	assert.Equal(t, "Costo total", get("A8"))
	assert.Equal(t, "330.00", get("B8"))
}
