package timeclock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/timeclock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

// closedSession construye una sesión cerrada con TotalHours derivado de
// HoursBetween, igual que hace el engine al cerrar.
func closedSession(t *testing.T, workerID, in, out string) *entity.AttendanceSession {
	t.Helper()
	ci := mustTime(t, in)
	co := mustTime(t, out)
	total := timeclock.HoursBetween(ci, co)
	return &entity.AttendanceSession{
		ID:         workerID + "-" + in,
		WorkerID:   workerID,
		ProjectID:  "obra-1",
		CheckIn:    ci,
		CheckOut:   &co,
		TotalHours: &total,
	}
}

func openSession(t *testing.T, workerID, in string) *entity.AttendanceSession {
	t.Helper()
	return &entity.AttendanceSession{
		ID:        workerID + "-open",
		WorkerID:  workerID,
		ProjectID: "obra-1",
		CheckIn:   mustTime(t, in),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// HoursBetween
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del protocolo: check-in 08:00, check-out 16:30 → 8.5 horas exactas.
func TestHoursBetween_JornadaDe8h30(t *testing.T) {
	in := mustTime(t, "2024-01-10T08:00:00Z")
	out := mustTime(t, "2024-01-10T16:30:00Z")

	got := timeclock.HoursBetween(in, out)
	assert.True(t, got.Equal(decimal.RequireFromString("8.5")),
		"8h30 de jornada deben ser exactamente 8.5 horas, no %s", got)
}

func TestHoursBetween_DuracionCero(t *testing.T) {
	in := mustTime(t, "2024-01-10T08:00:00Z")
	got := timeclock.HoursBetween(in, in)
	assert.True(t, got.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// TotalHours
// ──────────────────────────────────────────────────────────────────────────────

// Las sesiones abiertas aportan 0 y el resultado no depende del orden de la lista.
func TestTotalHours_InvarianteAlOrden(t *testing.T) {
	a := closedSession(t, "w1", "2024-01-10T08:00:00Z", "2024-01-10T16:30:00Z") // 8.5
	b := closedSession(t, "w2", "2024-01-10T07:15:00Z", "2024-01-10T15:00:00Z") // 7.75
	c := openSession(t, "w3", "2024-01-10T09:00:00Z")                           // 0

	want := decimal.RequireFromString("16.25")

	orderings := [][]*entity.AttendanceSession{
		{a, b, c}, {c, b, a}, {b, c, a}, {a, c, b},
	}
	for _, sessions := range orderings {
		got := timeclock.TotalHours(sessions)
		assert.True(t, got.Equal(want), "TotalHours debe ser 16.25 con cualquier orden, no %s", got)
	}
}

func TestTotalHours_ListaVacia(t *testing.T) {
	assert.True(t, timeclock.TotalHours(nil).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// PresentCount
// ──────────────────────────────────────────────────────────────────────────────

func TestPresentCount_SoloAbiertasDelDia(t *testing.T) {
	asOf := mustTime(t, "2024-01-10T12:00:00Z")
	sessions := []*entity.AttendanceSession{
		openSession(t, "w1", "2024-01-10T08:00:00Z"),                             // cuenta
		openSession(t, "w2", "2024-01-09T08:00:00Z"),                             // olvido de ayer: no cuenta
		closedSession(t, "w3", "2024-01-10T06:00:00Z", "2024-01-10T11:00:00Z"),   // cerrada: no cuenta
	}
	assert.Equal(t, 1, timeclock.PresentCount(sessions, asOf))
}

// ──────────────────────────────────────────────────────────────────────────────
// BudgetProgress: el flag de sobrecoste debe activarse en el límite, no después
// ──────────────────────────────────────────────────────────────────────────────

func TestBudgetProgress_Limites(t *testing.T) {
	budget := decimal.NewFromInt(100)

	exact := timeclock.BudgetProgress(decimal.NewFromInt(100), budget)
	assert.True(t, exact.Equal(decimal.NewFromInt(100)),
		"consumo == presupuesto debe dar exactamente 100, no %s", exact)

	over := timeclock.BudgetProgress(decimal.RequireFromString("100.5"), budget)
	assert.True(t, over.GreaterThan(decimal.NewFromInt(100)),
		"cualquier consumo por encima del presupuesto debe superar 100")

	under := timeclock.BudgetProgress(decimal.NewFromInt(50), budget)
	assert.True(t, under.Equal(decimal.NewFromInt(50)))
}

func TestBudgetProgress_SinPresupuesto(t *testing.T) {
	got := timeclock.BudgetProgress(decimal.NewFromInt(40), decimal.Zero)
	assert.True(t, got.IsZero(), "sin presupuesto el progreso es 0, no división por cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// LaborCost
// ──────────────────────────────────────────────────────────────────────────────

func TestLaborCost_TarifaAusenteCuentaCero(t *testing.T) {
	sessions := []*entity.AttendanceSession{
		closedSession(t, "w1", "2024-01-10T08:00:00Z", "2024-01-10T16:00:00Z"), // 8h
		closedSession(t, "w2", "2024-01-10T08:00:00Z", "2024-01-10T12:00:00Z"), // 4h, sin tarifa
	}
	rates := map[string]decimal.Decimal{
		"w1": decimal.RequireFromString("25.50"),
	}

	cost, missing := timeclock.LaborCost(sessions, rates)

	assert.True(t, cost.Equal(decimal.RequireFromString("204")),
		"8h × 25.50 = 204; la sesión sin tarifa aporta 0 (got %s)", cost)
	assert.Equal(t, []string{"w2"}, missing,
		"el trabajador sin tarifa debe reportarse para el warning de calidad de datos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Forgotten
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotten_PasadaLaHoraDeCorte(t *testing.T) {
	s := openSession(t, "w1", "2024-01-10T08:00:00Z")

	assert.False(t, timeclock.Forgotten(s, mustTime(t, "2024-01-10T17:59:00Z"), 18),
		"antes de la hora de corte no es olvido")
	assert.True(t, timeclock.Forgotten(s, mustTime(t, "2024-01-10T18:00:00Z"), 18),
		"a partir de la hora de corte la sesión abierta es un olvido")
	assert.True(t, timeclock.Forgotten(s, mustTime(t, "2024-01-11T07:00:00Z"), 18),
		"una sesión abierta de un día anterior siempre es un olvido")
}

func TestForgotten_CerradaNuncaEsOlvido(t *testing.T) {
	s := closedSession(t, "w1", "2024-01-10T08:00:00Z", "2024-01-10T16:30:00Z")
	assert.False(t, timeclock.Forgotten(s, mustTime(t, "2024-01-10T23:00:00Z"), 18))
}
