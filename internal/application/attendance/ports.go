package attendance

import (
	"context"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con un repositorio de fichajes atado a una
// transacción (Commit si fn devuelve nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.AttendanceTxRepository) error) error
}

// GeoProvider colaborador externo de geolocalización: una lectura best effort
// por petición, con espera acotada. Un timeout se trata como posición no
// disponible, nunca como espera indefinida.
type GeoProvider interface {
	Locate(ctx context.Context) (*entity.GPS, error)
}

// Policy flags de despliegue que consulta el engine.
type Policy struct {
	RequireGPS          bool
	ForgottenCutoffHour int  // hora local a partir de la cual una sesión abierta es "olvido"
	AllowMultiProject   bool // permite sesiones abiertas simultáneas en obras distintas
}
