package lists

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ebalakin/cartsync/internal/dbx"
	"github.com/ebalakin/cartsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the list and grants the owner access in one statement pair.
func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {

	query :=
		`INSERT INTO lists (name, owner_id)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, list.Name, list.OwnerID).Scan(&list.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.Grant(ctx, list.ID, list.OwnerID); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *PostgresRepository) HasAccess(ctx context.Context, listID, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		    SELECT 1 FROM list_access
		    WHERE list_id = $1 AND user_id = $2
		 )`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, listID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// Grant is idempotent: granting access twice is not an error.
func (r *PostgresRepository) Grant(ctx context.Context, listID, userID string) error {
	query :=
		`INSERT INTO list_access (list_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetCategoryOrder(ctx context.Context, listID string) ([]string, error) {
	query :=
		`SELECT category_order FROM lists
		 WHERE id = $1
		 `

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, listID).Scan(&raw); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var order []string
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decoding category order: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) SetCategoryOrder(ctx context.Context, listID string, order []string) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding category order: %w", err)
	}

	query :=
		`UPDATE lists SET category_order = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, listID, raw); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
