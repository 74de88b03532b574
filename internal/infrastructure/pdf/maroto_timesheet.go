// Package pdf genera la hoja de horas de una obra en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la obra  │  Fecha de emisión             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Date | Name | Code | CheckIn | CheckOut | Total | St │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE HORAS del periodo                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.TimesheetPDFGenerator = (*MarotoTimesheetGenerator)(nil)

// MarotoTimesheetGenerator implementa report.TimesheetPDFGenerator usando Maroto v2.
type MarotoTimesheetGenerator struct {
	formatter *report.Formatter
	now       func() time.Time
}

// NewMarotoTimesheetGenerator construye el generador.
func NewMarotoTimesheetGenerator(formatter *report.Formatter) *MarotoTimesheetGenerator {
	return &MarotoTimesheetGenerator{formatter: formatter, now: time.Now}
}

// GenerateTimesheetPDF genera la hoja de horas y devuelve sus bytes.
func (g *MarotoTimesheetGenerator) GenerateTimesheetPDF(
	_ context.Context,
	projectName string,
	rows []report.Row,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de horas "+projectName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(projectName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.tableHeaderRow())
	for _, r := range rows {
		m.AddRows(g.tableRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoTimesheetGenerator) headerRow(projectName string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(projectName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Hoja de horas", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(g.now().Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoTimesheetGenerator) tableHeaderRow() core.Row {
	widths := []int{2, 3, 1, 1, 1, 1, 3}
	header := g.formatter.Header()
	cols := make([]core.Col, 0, len(header))
	for i, label := range header {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func (g *MarotoTimesheetGenerator) tableRow(r report.Row) core.Row {
	widths := []int{2, 3, 1, 1, 1, 1, 3}
	fields := g.formatter.Fields(r)
	cols := make([]core.Col, 0, len(fields))
	for i, value := range fields {
		cols = append(cols, col.New(widths[i]).Add(text.New(value, props.Text{
			Size: 8, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func (g *MarotoTimesheetGenerator) totalRow(rows []report.Row) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		if r.TotalHours != nil {
			total = total.Add(*r.TotalHours)
		}
	}
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL DE HORAS", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(report.FormatHoursMinutes(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
	)
}
