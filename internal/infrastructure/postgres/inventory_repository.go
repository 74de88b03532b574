package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia del stock de obra.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const itemColumns = `id, project_id, label, quantity_current, quantity_initial, threshold_alert, unit, created_at, updated_at`

// Create persiste un nuevo material.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProjectID, item.Label, item.QuantityCurrent, item.QuantityInitial,
		item.ThresholdAlert, item.Unit, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// ListByProject lista el stock de una obra por nombre de material.
func (r *InventoryRepo) ListByProject(projectID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE project_id = $1 ORDER BY label ASC`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ApplyDelta aplica el ajuste de forma atómica en el propio UPDATE, con suelo en
// cero, y devuelve el item resultante. Dos ajustes concurrentes se serializan en
// el row lock del UPDATE y ninguno pierde su delta.
func (r *InventoryRepo) ApplyDelta(id string, delta int) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity_current = GREATEST(0, quantity_current + $2), updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("apply inventory delta: %w", err)
	}
	return item, nil
}

// CreateNeed persiste un pedido urgente de material.
func (r *InventoryRepo) CreateNeed(need *entity.UrgentNeed) error {
	query := `
		INSERT INTO inventory_needs (id, project_id, article, author, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		need.ID, need.ProjectID, need.Article, need.Author, need.Status, need.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert urgent need: %w", err)
	}
	return nil
}

// ListNeeds lista los pedidos urgentes de una obra, más reciente primero.
func (r *InventoryRepo) ListNeeds(projectID string) ([]*entity.UrgentNeed, error) {
	query := `
		SELECT id, project_id, article, author, status, created_at
		FROM inventory_needs WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list urgent needs: %w", err)
	}
	defer rows.Close()
	var list []*entity.UrgentNeed
	for rows.Next() {
		var n entity.UrgentNeed
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.Article, &n.Author, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan urgent need: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// UpdateNeedStatus cambia el estado de un pedido urgente.
func (r *InventoryRepo) UpdateNeedStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_needs SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update need status: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(&i.ID, &i.ProjectID, &i.Label, &i.QuantityCurrent, &i.QuantityInitial,
		&i.ThresholdAlert, &i.Unit, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
