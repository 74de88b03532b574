package entity

import "time"

// Estados de un pedido urgente de material.
const (
	NeedToOrder   = "to_order"
	NeedOrdered   = "ordered"
	NeedDelivered = "delivered"
)

// InventoryItem es el stock de un material en una obra (sacos, litros, m², ...).
// QuantityCurrent nunca baja de cero: los ajustes se aplican como delta atómico
// en el store, no como read-modify-write del cliente.
type InventoryItem struct {
	ID              string
	ProjectID       string
	Label           string
	QuantityCurrent int
	QuantityInitial int
	ThresholdAlert  int
	Unit            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si el stock está en o por debajo del umbral de alerta.
func (i *InventoryItem) LowStock() bool { return i.QuantityCurrent <= i.ThresholdAlert }

// UrgentNeed es una necesidad de material anotada a pie de obra.
type UrgentNeed struct {
	ID        string
	ProjectID string
	Article   string
	Author    string // nombre del trabajador que lo anota
	Status    string // to_order, ordered, delivered
	CreatedAt time.Time
}
