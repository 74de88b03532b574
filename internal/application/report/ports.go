package report

import "context"

// SpreadsheetGenerator puerto del export Excel (mismas columnas y orden que el CSV).
type SpreadsheetGenerator interface {
	TimesheetXLSX(projectName string, rows []Row) ([]byte, error)
}

// TimesheetPDFGenerator puerto de la hoja de horas en PDF.
type TimesheetPDFGenerator interface {
	GenerateTimesheetPDF(ctx context.Context, projectName string, rows []Row) ([]byte, error)
}
