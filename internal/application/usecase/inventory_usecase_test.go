package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// fakeInventoryRepo reproduce la semántica del adaptador Postgres: el ajuste
// es atómico (un solo lock por operación) y recorta en 0, igual que el
// GREATEST(0, quantity_current + delta) del UPDATE real.
type fakeInventoryRepo struct {
	mu    sync.Mutex
	items map[string]*entity.InventoryItem
	needs map[string]*entity.UrgentNeed
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		items: map[string]*entity.InventoryItem{},
		needs: map[string]*entity.UrgentNeed{},
	}
}

func (r *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) ListByProject(projectID string) ([]*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.InventoryItem
	for _, item := range r.items {
		if item.ProjectID == projectID {
			cp := *item
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeInventoryRepo) ApplyDelta(id string, delta int) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	next := item.QuantityCurrent + delta
	if next < 0 {
		next = 0
	}
	item.QuantityCurrent = next
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) CreateNeed(need *entity.UrgentNeed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *need
	r.needs[need.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) ListNeeds(projectID string) ([]*entity.UrgentNeed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.UrgentNeed
	for _, n := range r.needs {
		if n.ProjectID == projectID {
			cp := *n
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeInventoryRepo) UpdateNeedStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.needs[id]; ok {
		n.Status = status
	}
	return nil
}

type recordPublisher struct {
	mu      sync.Mutex
	changes []events.Change
}

func (p *recordPublisher) Publish(_ context.Context, change events.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

func (p *recordPublisher) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.changes)
}

func newInventoryFixture(t *testing.T) (*usecase.InventoryUseCase, *fakeInventoryRepo, *recordPublisher) {
	t.Helper()
	repo := newFakeInventoryRepo()
	pub := &recordPublisher{}
	return usecase.NewInventoryUseCase(repo, pub, logger.NewNop()), repo, pub
}

func createItem(t *testing.T, uc *usecase.InventoryUseCase, initial, threshold int) string {
	t.Helper()
	item, err := uc.CreateItem(context.Background(), dto.CreateItemRequest{
		ProjectID:       "p-1",
		Label:           "sacos de cemento",
		QuantityInitial: initial,
		ThresholdAlert:  threshold,
		Unit:            "saco",
	})
	require.NoError(t, err)
	return item.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta: ajustes secuenciales y concurrentes, tope en 0
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_DosRestasLleganAlUmbral(t *testing.T) {
	uc, _, pub := newInventoryFixture(t)
	id := createItem(t, uc, 2, 0)
	ctx := context.Background()

	first, err := uc.ApplyDelta(ctx, id, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.QuantityCurrent)
	assert.False(t, first.LowStock)

	second, err := uc.ApplyDelta(ctx, id, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, second.QuantityCurrent)
	assert.True(t, second.LowStock, "en el umbral debe dispararse la alerta de stock")

	// Un evento por alta + uno por cada ajuste.
	assert.Equal(t, 3, pub.len())
}

func TestApplyDelta_RestaMayorQueElStock_RecortaEnCero(t *testing.T) {
	uc, _, _ := newInventoryFixture(t)
	id := createItem(t, uc, 3, 0)

	item, err := uc.ApplyDelta(context.Background(), id, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, item.QuantityCurrent, "el stock nunca baja de cero")
}

func TestApplyDelta_AjustesConcurrentes_NoPierdenUpdates(t *testing.T) {
	uc, repo, _ := newInventoryFixture(t)
	id := createItem(t, uc, 100, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ApplyDelta(ctx, id, -1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, 50, final.QuantityCurrent)
}

func TestApplyDelta_DeltaCero(t *testing.T) {
	uc, _, _ := newInventoryFixture(t)
	id := createItem(t, uc, 5, 0)

	_, err := uc.ApplyDelta(context.Background(), id, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyDelta_ItemDesconocido(t *testing.T) {
	uc, _, _ := newInventoryFixture(t)

	_, err := uc.ApplyDelta(context.Background(), "no-existe", -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
