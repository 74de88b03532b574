// Package excel genera el export de fichajes en formato XLSX con las mismas
// columnas que el CSV.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/report"
)

var _ report.SpreadsheetGenerator = (*TimesheetGenerator)(nil)

// TimesheetGenerator implementación de report.SpreadsheetGenerator con excelize.
type TimesheetGenerator struct {
	formatter *report.Formatter
}

// NewTimesheetGenerator construye el generador reutilizando el formatter
// tabular, así Excel y CSV muestran exactamente las mismas celdas.
func NewTimesheetGenerator(formatter *report.Formatter) *TimesheetGenerator {
	return &TimesheetGenerator{formatter: formatter}
}

// TimesheetXLSX genera el libro: una hoja con cabecera en negrita y una fila
// por sesión, en el mismo orden que el CSV.
func (g *TimesheetGenerator) TimesheetXLSX(projectName string, rows []report.Row) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Pointages"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("crear estilo de cabecera: %w", err)
	}

	header := g.formatter.Header()
	for col, label := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("coordenadas de cabecera: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			f.Close()
			return nil, fmt.Errorf("escribir cabecera %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("estilo de cabecera %s: %w", cell, err)
		}
	}

	widths := []float64{12, 24, 12, 10, 10, 12, 22}
	for col := range header {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("nombre de columna: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, widths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("ancho de columna: %w", err)
		}
	}

	for i, r := range rows {
		for col, value := range g.formatter.Fields(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("coordenadas de fila: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("escribir celda %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("cerrar libro: %w", err)
	}
	return buf.Bytes(), nil
}
