package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GPS coordenada capturada en el check-in (best effort).
type GPS struct {
	Lat float64
	Lng float64
}

// AttendanceSession es la entidad central del fichaje. Una sesión está abierta
// mientras CheckOut es nil y cerrada en cuanto se fija; se muta exactamente una
// vez (al cierre) y nunca más.
//
// Invariantes:
//   - CheckOut, si existe, es >= CheckIn.
//   - TotalHours, si existe, es exactamente las horas fraccionarias entre
//     CheckIn y CheckOut (sin redondear; el redondeo es solo de presentación).
//   - Una sesión no puede cerrarse sin firma de salida.
type AttendanceSession struct {
	ID           string
	WorkerID     string
	ProjectID    string
	CheckIn      time.Time
	CheckOut     *time.Time
	GPS          *GPS
	SignatureIn  []byte // imagen opaca (PNG base64 decodificado); solo se valida no-vacío
	SignatureOut []byte
	TotalHours   *decimal.Decimal
	CreatedAt    time.Time
}

// Open indica si la sesión sigue abierta (sin check-out).
func (s *AttendanceSession) Open() bool { return s.CheckOut == nil }
