package repository

import "github.com/jhoicas/Fichajes-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia del stock de obra.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	ListByProject(projectID string) ([]*entity.InventoryItem, error)
	// ApplyDelta aplica el ajuste como operación atómica en el store
	// (quantity = GREATEST(0, quantity + delta)), nunca read-then-write del
	// cliente, para que dos ajustes concurrentes no pierdan updates.
	// Devuelve el item ya actualizado.
	ApplyDelta(id string, delta int) (*entity.InventoryItem, error)

	CreateNeed(need *entity.UrgentNeed) error
	ListNeeds(projectID string) ([]*entity.UrgentNeed, error)
	UpdateNeedStatus(id, status string) error
}
