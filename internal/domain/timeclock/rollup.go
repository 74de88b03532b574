// Package timeclock contiene el cálculo puro de horas y agregados de fichajes.
// Ninguna función tiene efectos secundarios y todas son invariantes al orden de
// la lista de entrada.
package timeclock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// HoursBetween devuelve las horas fraccionarias exactas entre in y out.
// Es la única fuente de verdad para TotalHours: el valor almacenado sale
// siempre de aquí, sin redondeo (el redondeo es de presentación).
func HoursBetween(in, out time.Time) decimal.Decimal {
	return decimal.NewFromInt(out.Sub(in).Nanoseconds()).Div(nanosPerHour)
}

// PresentCount cuenta las sesiones abiertas cuyo check-in cae en el día natural
// de asOf (en la zona horaria de asOf).
func PresentCount(sessions []*entity.AttendanceSession, asOf time.Time) int {
	n := 0
	y, m, d := asOf.Date()
	for _, s := range sessions {
		if !s.Open() {
			continue
		}
		sy, sm, sd := s.CheckIn.In(asOf.Location()).Date()
		if sy == y && sm == m && sd == d {
			n++
		}
	}
	return n
}

// TotalHours suma TotalHours de las sesiones cerradas. Las sesiones abiertas
// aportan 0.
func TotalHours(sessions []*entity.AttendanceSession) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sessions {
		if s.TotalHours != nil {
			total = total.Add(*s.TotalHours)
		}
	}
	return total
}

// BudgetProgress devuelve el porcentaje de consumo del presupuesto de horas:
// exactamente 100 en el límite, >100 en sobrecoste, 0 si no hay presupuesto.
func BudgetProgress(totalHours, budgetHours decimal.Decimal) decimal.Decimal {
	if !budgetHours.IsPositive() {
		return decimal.Zero
	}
	return totalHours.Div(budgetHours).Mul(decimal.NewFromInt(100))
}

// LaborCost suma horas × tarifa por las sesiones cerradas. Una tarifa ausente
// cuenta como 0 y el WorkerID se devuelve en missing para que el caller lo
// registre como warning de calidad de datos (política explícita, no silenciosa).
func LaborCost(sessions []*entity.AttendanceSession, rateByWorker map[string]decimal.Decimal) (cost decimal.Decimal, missing []string) {
	cost = decimal.Zero
	seen := map[string]bool{}
	for _, s := range sessions {
		if s.TotalHours == nil {
			continue
		}
		rate, ok := rateByWorker[s.WorkerID]
		if !ok {
			if !seen[s.WorkerID] {
				seen[s.WorkerID] = true
				missing = append(missing, s.WorkerID)
			}
			continue
		}
		cost = cost.Add(s.TotalHours.Mul(rate))
	}
	return cost, missing
}

// Forgotten marca una sesión como "olvido de fichaje": sigue abierta y la hora
// local de now ya pasó la hora de corte del mismo día natural del check-in.
// Es un flag derivado, nunca se persiste.
func Forgotten(s *entity.AttendanceSession, now time.Time, cutoffHour int) bool {
	if !s.Open() {
		return false
	}
	in := s.CheckIn.In(now.Location())
	y, m, d := now.Date()
	iy, im, id := in.Date()
	sameDay := y == iy && m == im && d == id
	if sameDay {
		return now.Hour() >= cutoffHour
	}
	// Sesión abierta de un día anterior: siempre es un olvido.
	return now.After(in)
}
