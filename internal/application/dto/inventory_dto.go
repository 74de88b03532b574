package dto

import "time"

// CreateItemRequest alta de material en el stock de una obra.
type CreateItemRequest struct {
	ProjectID       string `json:"project_id" validate:"required,uuid"`
	Label           string `json:"label" validate:"required,min=1,max=200"`
	QuantityInitial int    `json:"quantity_initial" validate:"min=0"`
	ThresholdAlert  int    `json:"threshold_alert" validate:"min=0"`
	Unit            string `json:"unit" validate:"omitempty,max=32"`
}

// ApplyDeltaRequest ajuste incremental de stock (+/-). El store lo aplica de
// forma atómica con tope en 0.
type ApplyDeltaRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ItemResponse salida de un material.
type ItemResponse struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Label           string    `json:"label"`
	QuantityCurrent int       `json:"quantity_current"`
	QuantityInitial int       `json:"quantity_initial"`
	ThresholdAlert  int       `json:"threshold_alert"`
	Unit            string    `json:"unit,omitempty"`
	LowStock        bool      `json:"low_stock"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateNeedRequest necesidad urgente anotada a pie de obra.
type CreateNeedRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Article   string `json:"article" validate:"required,min=1,max=300"`
}

// UpdateNeedRequest transición de estado del pedido.
type UpdateNeedRequest struct {
	Status string `json:"status" validate:"required,oneof=to_order ordered delivered"`
}

// NeedResponse salida de una necesidad urgente.
type NeedResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Article   string    `json:"article"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
