// Package report transforma sesiones de fichaje en los formatos de entrega:
// export tabular (CSV/Excel), parte narrativo de fin de jornada y hoja de
// horas en PDF. Todo determinista: misma entrada, mismos bytes.
package report

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain"
)

// Columnas del export tabular, en el orden del fichero.
var exportHeader = []string{"Date", "Name", "Code", "CheckIn", "CheckOut", "TotalHours", "Status"}

// Formatos de fecha y hora del export. Elegidos para que el round-trip
// fecha+hora → texto → fecha+hora sea sin pérdida a la precisión mostrada.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Estados mostrados en la columna Status.
const (
	StatusValidated = "validated"
	StatusPending   = "in-progress/forgotten"
)

// Row una fila del export: la sesión ya unida con el trabajador. Un WorkerName
// vacío (referencia colgante) se rinde como "unknown worker".
type Row struct {
	CheckIn    time.Time
	CheckOut   *time.Time
	TotalHours *decimal.Decimal
	WorkerName string
	Matricule  string
}

// Formatter configuración del formato tabular.
type Formatter struct {
	Separator string // ";" por defecto (es el separador del export original)
	Precision int    // dígitos de presentación para horas decimales
}

// NewFormatter aplica los valores por defecto.
func NewFormatter(separator string, precision int) *Formatter {
	if separator == "" {
		separator = ";"
	}
	if precision <= 0 {
		precision = 2
	}
	return &Formatter{Separator: separator, Precision: precision}
}

// comma el separador como rune para encoding/csv.
func (f *Formatter) comma() rune {
	r, _ := utf8.DecodeRuneInString(f.Separator)
	if r == utf8.RuneError {
		return ';'
	}
	return r
}

// ExportCSV genera el export tabular: cabecera fija y una fila por sesión,
// ordenadas por check-in descendente (el export refleja lo que la pantalla de
// nóminas muestra). Un campo que contiene el separador sale entrecomillado
// (RFC 4180), así un nombre con ";" no desplaza columnas. Con requireNonEmpty
// y cero sesiones devuelve ErrEmptyInput (política del caller, no del
// formatter); sin el flag devuelve solo cabecera.
func (f *Formatter) ExportCSV(rows []Row, requireNonEmpty bool) (string, error) {
	if len(rows) == 0 && requireNonEmpty {
		return "", domain.ErrEmptyInput
	}
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckIn.After(sorted[j].CheckIn)
	})

	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = f.comma()
	records := [][]string{exportHeader}
	for _, r := range sorted {
		records = append(records, f.Fields(r))
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return b.String(), nil
}

// Header devuelve las columnas del export, en orden.
func (f *Formatter) Header() []string {
	return append([]string(nil), exportHeader...)
}

// Fields rinde una fila con las mismas celdas que el CSV; lo reusan los
// exports Excel y PDF para que los tres formatos muestren lo mismo.
func (f *Formatter) Fields(r Row) []string {
	name := r.WorkerName
	if name == "" {
		name = "unknown worker"
	}
	checkOut := "--:--"
	status := StatusPending
	if r.CheckOut != nil {
		checkOut = r.CheckOut.Format(timeLayout)
		status = StatusValidated
	}
	hours := "0"
	if r.TotalHours != nil {
		hours = FormatHoursMinutes(*r.TotalHours)
	}
	return []string{
		r.CheckIn.Format(dateLayout),
		name,
		r.Matricule,
		r.CheckIn.Format(timeLayout),
		checkOut,
		hours,
		status,
	}
}

// ParsedRow fila re-leída de un export (round-trip de fecha/horas).
type ParsedRow struct {
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	TotalHours decimal.Decimal
	WorkerName string
	Matricule  string
	Status     string
}

// ParseCSV relee un export generado por ExportCSV. Existe para que el export
// sea verificablemente sin pérdida: fecha, horas y duración vuelven a los
// mismos valores a la precisión mostrada.
func (f *Formatter) ParseCSV(data string) ([]ParsedRow, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = f.comma()
	reader.FieldsPerRecord = len(exportHeader)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse export: %v: %w", err, domain.ErrInvalidInput)
	}
	if len(records) == 0 || !headerMatches(records[0]) {
		return nil, fmt.Errorf("parse export: %w", domain.ErrInvalidInput)
	}
	var rows []ParsedRow
	for _, parts := range records[1:] {
		date, err := time.Parse(dateLayout, parts[0])
		if err != nil {
			return nil, fmt.Errorf("parse export: fecha %q: %w", parts[0], err)
		}
		checkIn, err := time.Parse(timeLayout, parts[3])
		if err != nil {
			return nil, fmt.Errorf("parse export: check-in %q: %w", parts[3], err)
		}
		row := ParsedRow{
			Date:       date,
			CheckIn:    combine(date, checkIn),
			WorkerName: parts[1],
			Matricule:  parts[2],
			Status:     parts[6],
		}
		if parts[4] != "--:--" {
			out, err := time.Parse(timeLayout, parts[4])
			if err != nil {
				return nil, fmt.Errorf("parse export: check-out %q: %w", parts[4], err)
			}
			co := combine(date, out)
			row.CheckOut = &co
		}
		row.TotalHours, err = ParseHoursMinutes(parts[5])
		if err != nil {
			return nil, fmt.Errorf("parse export: horas %q: %w", parts[5], err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func headerMatches(record []string) bool {
	for i, col := range exportHeader {
		if record[i] != col {
			return false
		}
	}
	return true
}

func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// FormatHoursMinutes rinde horas decimales como H:MM (8.5 → "8:30"). El
// redondeo de minutos puede arrastrar a la hora siguiente (7.999 → "8:00").
func FormatHoursMinutes(hours decimal.Decimal) string {
	totalMinutes := hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// ParseHoursMinutes inversa de FormatHoursMinutes. Acepta también "0" (fila
// sin check-out).
func ParseHoursMinutes(s string) (decimal.Decimal, error) {
	if s == "0" {
		return decimal.Zero, nil
	}
	var h, m int64
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(h*60 + m).Div(decimal.NewFromInt(60)), nil
}

// FileName nombre del fichero de export: obra + fecha, como el botón de
// descarga original.
func FileName(projectName string, date time.Time, ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, projectName)
	return fmt.Sprintf("Pointages_%s_%s.%s", clean, date.Format(dateLayout), ext)
}
