package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Worker.
const (
	RoleAdmin    = "admin"
	RoleSiteLead = "site_lead" // jefe de obra
	RoleCrewLead = "crew_lead" // jefe de equipo
	RoleOperator = "operator"
	RoleTemp     = "temp" // interino / ETT
)

// Estados de disponibilidad de un Worker.
const (
	WorkerAvailable = "available"
	WorkerOnLeave   = "leave"
	WorkerSick      = "sick"
	WorkerStopped   = "stopped" // baja laboral / fin de contrato
)

// Worker representa un trabajador de obra. El matricule es su código de acceso
// único (funciona como login). Ciclo de vida blando: nunca se borra, solo cambia
// de estado.
type Worker struct {
	ID         string
	Matricule  string
	Name       string
	Role       string // admin, site_lead, crew_lead, operator, temp
	Status     string // available, leave, sick, stopped
	Phone      string
	HourlyRate *decimal.Decimal // nil = tarifa no configurada (cuenta como 0 en costes)
	PinHash    string           // bcrypt; solo para roles con acceso admin, vacío para el resto
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
