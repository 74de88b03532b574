// Package events define el canal de cambios que sustituye a las notificaciones
// realtime del prototipo: el core publica "ha cambiado X" sin saber quién
// escucha; la UI u otros listeners se suscriben en el otro extremo.
package events

import (
	"context"
	"time"
)

// Entidades y acciones publicadas.
const (
	EntitySession   = "session"
	EntityTask      = "task"
	EntityInventory = "inventory"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change notificación de cambio de una fila concreta (diff por identificador,
// no "recargar todo").
type Change struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

// Publisher puerto de publicación. La publicación es best effort: un fallo se
// registra pero no aborta la operación de negocio que lo originó.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// NopPublisher descarta los eventos (tests, despliegues sin redis).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Change) error { return nil }
