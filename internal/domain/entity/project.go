package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una obra (chantier).
const (
	ProjectPending  = "pending"
	ProjectStarted  = "started"
	ProjectFinished = "finished"
)

// Project representa una obra: dirección, equipo asignado y presupuesto en horas.
// Crew guarda IDs de Worker; la integridad referencial es responsabilidad del
// store, así que una referencia colgante se presenta como "trabajador desconocido"
// en las lecturas, nunca como error.
type Project struct {
	ID          string
	Name        string
	Address     string
	City        string
	Crew        []string // IDs de Worker
	BudgetHours decimal.Decimal
	Status      string // pending, started, finished
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
