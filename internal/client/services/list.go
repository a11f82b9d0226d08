// Package services contains the application services of the cartsync client.
// ListService is the session object the UI layer talks to: every mutation is
// written to the local store optimistically, appended to the mutation queue,
// and nudges the background syncer.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/client/repositories/categories"
	"github.com/ebalakin/cartsync/internal/client/repositories/items"
	"github.com/ebalakin/cartsync/internal/client/repositories/queue"
	"github.com/ebalakin/cartsync/internal/client/syncer"
	"github.com/ebalakin/cartsync/internal/dbx"
)

// Notifier receives a nudge after every local mutation so the device can
// attempt an immediate sync while online. The periodic timer remains the
// correctness backstop; dropping a nudge is always safe.
type Notifier interface {
	Notify()
}

// ListService is the per-list session surface for the UI layer.
type ListService interface {
	Items(ctx context.Context) ([]models.Item, error)
	Categories(ctx context.Context) ([]models.Category, error)

	AddItem(ctx context.Context, text string, categoryID *string) (*models.Item, error)
	EditItem(ctx context.Context, id, text string, categoryID *string) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	DeleteItem(ctx context.Context, id string) error

	AddCategory(ctx context.Context, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
	ReorderCategories(ctx context.Context, ids []string) error

	PendingCount(ctx context.Context) (int, error)
}

type listService struct {
	db       *sql.DB
	listID   string
	notifier Notifier
}

// NewListService returns a ListService bound to one list of the local
// database. notifier may be nil (no background sync, e.g. in tests).
func NewListService(db *sql.DB, listID string, notifier Notifier) ListService {
	return &listService{db: db, listID: listID, notifier: notifier}
}

func (s *listService) notify() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

// mutate runs the optimistic store write and the queue append in one local
// transaction, then nudges the syncer. The queue entry and the store write
// either both land or neither does.
func (s *listService) mutate(ctx context.Context, op models.Op, payload any, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	change, err := models.NewChange(s.listID, op, payload, syncer.Now())
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return queue.NewSQLiteRepository(tx).Enqueue(ctx, change)
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *listService) Items(ctx context.Context) ([]models.Item, error) {
	return items.NewSQLiteRepository(s.db).GetAll(ctx, s.listID)
}

func (s *listService) Categories(ctx context.Context) ([]models.Category, error) {
	return categories.NewSQLiteRepository(s.db).GetAll(ctx, s.listID)
}

func (s *listService) AddItem(ctx context.Context, text string, categoryID *string) (*models.Item, error) {
	item := &models.Item{
		ID:         uuid.NewString(),
		ListID:     s.listID,
		CategoryID: categoryID,
		Text:       text,
	}
	payload := models.ItemPayload{ID: item.ID, CategoryID: categoryID, Text: text}
	err := s.mutate(ctx, models.OpItemAdd, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return items.NewSQLiteRepository(tx).Put(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *listService) EditItem(ctx context.Context, id, text string, categoryID *string) error {
	item, err := items.NewSQLiteRepository(s.db).Get(ctx, id)
	if err != nil {
		return err
	}
	item.Text = text
	item.CategoryID = categoryID
	return s.putItemUpdate(ctx, item)
}

func (s *listService) SetCompleted(ctx context.Context, id string, completed bool) error {
	item, err := items.NewSQLiteRepository(s.db).Get(ctx, id)
	if err != nil {
		return err
	}
	item.Completed = completed
	return s.putItemUpdate(ctx, item)
}

// putItemUpdate records a whole-record update: last write wins at the server
// per record, never per field.
func (s *listService) putItemUpdate(ctx context.Context, item *models.Item) error {
	payload := models.ItemPayload{ID: item.ID, CategoryID: item.CategoryID, Text: item.Text, Completed: item.Completed}
	return s.mutate(ctx, models.OpItemUpdate, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return items.NewSQLiteRepository(tx).Put(ctx, item)
	})
}

func (s *listService) DeleteItem(ctx context.Context, id string) error {
	item, err := items.NewSQLiteRepository(s.db).Get(ctx, id)
	if err != nil {
		return err
	}
	item.Deleted = true
	payload := models.ItemPayload{ID: item.ID, CategoryID: item.CategoryID, Text: item.Text, Completed: item.Completed}
	return s.mutate(ctx, models.OpItemDelete, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return items.NewSQLiteRepository(tx).Put(ctx, item)
	})
}

func (s *listService) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	existing, err := categories.NewSQLiteRepository(s.db).GetAll(ctx, s.listID)
	if err != nil {
		return nil, err
	}
	category := &models.Category{
		ID:        uuid.NewString(),
		ListID:    s.listID,
		Name:      name,
		SortOrder: len(existing),
	}
	payload := models.CategoryPayload{ID: category.ID, Name: name, SortOrder: category.SortOrder}
	err = s.mutate(ctx, models.OpCategoryAdd, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return categories.NewSQLiteRepository(tx).Put(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *listService) RenameCategory(ctx context.Context, id, name string) error {
	category, err := categories.NewSQLiteRepository(s.db).Get(ctx, id)
	if err != nil {
		return err
	}
	category.Name = name
	payload := models.CategoryPayload{ID: category.ID, Name: name, SortOrder: category.SortOrder}
	return s.mutate(ctx, models.OpCategoryUpdate, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return categories.NewSQLiteRepository(tx).Put(ctx, category)
	})
}

func (s *listService) DeleteCategory(ctx context.Context, id string) error {
	category, err := categories.NewSQLiteRepository(s.db).Get(ctx, id)
	if err != nil {
		return err
	}
	category.Deleted = true
	payload := models.CategoryPayload{ID: category.ID, Name: category.Name, SortOrder: category.SortOrder}
	return s.mutate(ctx, models.OpCategoryDelete, payload, func(ctx context.Context, tx dbx.DBTX) error {
		// Items of a deleted category become "Uncategorized" immediately;
		// the server performs the same reassignment authoritatively.
		if err := categories.NewSQLiteRepository(tx).Put(ctx, category); err != nil {
			return err
		}
		return items.NewSQLiteRepository(tx).ClearCategory(ctx, s.listID, id)
	})
}

func (s *listService) ReorderCategories(ctx context.Context, ids []string) error {
	payload := models.OrderPayload{IDs: ids}
	return s.mutate(ctx, models.OpCategoryOrder, payload, func(ctx context.Context, tx dbx.DBTX) error {
		return categories.NewSQLiteRepository(tx).SetOrder(ctx, s.listID, ids)
	})
}

func (s *listService) PendingCount(ctx context.Context) (int, error) {
	return queue.NewSQLiteRepository(s.db).Len(ctx, s.listID)
}
