package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// InventoryUseCase stock de obra y necesidades urgentes. Los ajustes de
// cantidad se delegan al store como delta atómico con tope en 0: dos ajustes
// concurrentes nunca pierden updates ni dejan stock negativo.
type InventoryUseCase struct {
	repo      repository.InventoryRepository
	publisher events.Publisher
	log       *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, publisher events.Publisher, log *logger.Logger) *InventoryUseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &InventoryUseCase{repo: repo, publisher: publisher, log: log}
}

// CreateItem alta de material.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Label == "" || in.ProjectID == "" || in.QuantityInitial < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:              uuid.New().String(),
		ProjectID:       in.ProjectID,
		Label:           in.Label,
		QuantityCurrent: in.QuantityInitial,
		QuantityInitial: in.QuantityInitial,
		ThresholdAlert:  in.ThresholdAlert,
		Unit:            in.Unit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	uc.publish(ctx, item.ID, item.ProjectID, events.ActionCreated)
	return toItemResponse(item), nil
}

// ApplyDelta ajusta el stock en ±delta. La resta por debajo de cero se recorta
// a 0 en el propio store.
func (uc *InventoryUseCase) ApplyDelta(ctx context.Context, id string, delta int) (*dto.ItemResponse, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.ApplyDelta(id, delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.LowStock() {
		uc.log.Warn().
			Str("item_id", item.ID).
			Str("label", item.Label).
			Int("quantity", item.QuantityCurrent).
			Int("threshold", item.ThresholdAlert).
			Msg("stock en umbral de alerta")
	}
	uc.publish(ctx, item.ID, item.ProjectID, events.ActionUpdated)
	return toItemResponse(item), nil
}

// ListByProject stock de una obra.
func (uc *InventoryUseCase) ListByProject(projectID string) ([]dto.ItemResponse, error) {
	items, err := uc.repo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	list := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		list = append(list, *toItemResponse(item))
	}
	return list, nil
}

// CreateNeed anota una necesidad urgente de material.
func (uc *InventoryUseCase) CreateNeed(ctx context.Context, in dto.CreateNeedRequest, author string) (*dto.NeedResponse, error) {
	if in.Article == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	need := &entity.UrgentNeed{
		ID:        uuid.New().String(),
		ProjectID: in.ProjectID,
		Article:   in.Article,
		Author:    author,
		Status:    entity.NeedToOrder,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateNeed(need); err != nil {
		return nil, err
	}
	uc.publish(ctx, need.ID, need.ProjectID, events.ActionCreated)
	return toNeedResponse(need), nil
}

// ListNeeds necesidades urgentes de una obra.
func (uc *InventoryUseCase) ListNeeds(projectID string) ([]dto.NeedResponse, error) {
	needs, err := uc.repo.ListNeeds(projectID)
	if err != nil {
		return nil, err
	}
	list := make([]dto.NeedResponse, 0, len(needs))
	for _, n := range needs {
		list = append(list, *toNeedResponse(n))
	}
	return list, nil
}

// UpdateNeedStatus transición a-comandar → pedido → entregado.
func (uc *InventoryUseCase) UpdateNeedStatus(id, status string) error {
	switch status {
	case entity.NeedToOrder, entity.NeedOrdered, entity.NeedDelivered:
	default:
		return domain.ErrInvalidInput
	}
	return uc.repo.UpdateNeedStatus(id, status)
}

func (uc *InventoryUseCase) publish(ctx context.Context, id, projectID, action string) {
	err := uc.publisher.Publish(ctx, events.Change{
		Entity:    events.EntityInventory,
		ID:        id,
		ProjectID: projectID,
		Action:    action,
		At:        time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", id).Msg("no se pudo publicar el evento de cambio")
	}
}

func toItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              i.ID,
		ProjectID:       i.ProjectID,
		Label:           i.Label,
		QuantityCurrent: i.QuantityCurrent,
		QuantityInitial: i.QuantityInitial,
		ThresholdAlert:  i.ThresholdAlert,
		Unit:            i.Unit,
		LowStock:        i.LowStock(),
		UpdatedAt:       i.UpdatedAt,
	}
}

func toNeedResponse(n *entity.UrgentNeed) *dto.NeedResponse {
	return &dto.NeedResponse{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Article:   n.Article,
		Author:    n.Author,
		Status:    n.Status,
		CreatedAt: n.CreatedAt,
	}
}
