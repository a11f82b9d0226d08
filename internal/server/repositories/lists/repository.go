package lists

import (
	"context"

	"github.com/ebalakin/cartsync/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	HasAccess(ctx context.Context, listID, userID string) (bool, error)
	Grant(ctx context.Context, listID, userID string) error
	GetCategoryOrder(ctx context.Context, listID string) ([]string, error)
	SetCategoryOrder(ctx context.Context, listID string, order []string) error
}
