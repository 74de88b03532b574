package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrMatriculeExists = errors.New("el matricule ya está registrado")

	// Protocolo de fichaje (clock-in / clock-out).
	ErrDuplicateSession    = errors.New("ya existe un fichaje abierto para este trabajador y obra")
	ErrSessionNotFound     = errors.New("fichaje no encontrado")
	ErrAlreadyClosed       = errors.New("el fichaje ya está cerrado")
	ErrMissingEvidence     = errors.New("falta la firma del operario")
	ErrLocationUnavailable = errors.New("posición GPS no disponible")

	// Formateo de reportes.
	ErrEmptyInput = errors.New("no hay fichajes para exportar")
)

// Códigos de warning no fatales. Se adjuntan al resultado de la operación
// y se registran en el log; nunca abortan la operación.
const (
	WarnClockSkew   = "CLOCK_SKEW"   // check-out anterior al check-in; se ajusta al check-in
	WarnDataQuality = "DATA_QUALITY" // dato faltante tratado con valor por defecto (ej. tarifa horaria)
)
