package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/client/repositories/items"
	"github.com/ebalakin/cartsync/internal/client/repositories/queue"
	"github.com/ebalakin/cartsync/internal/client/store"
)

const testListID = "11111111-1111-1111-1111-111111111111"

type countingNotifier struct {
	n int
}

func (c *countingNotifier) Notify() { c.n++ }

func newListFixture(t *testing.T) (ListService, *sql.DB, *countingNotifier) {
	t.Helper()
	db, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &countingNotifier{}
	return NewListService(db, testListID, notifier), db, notifier
}

func drain(t *testing.T, db *sql.DB) []*models.Change {
	t.Helper()
	changes, _, err := queue.NewSQLiteRepository(db).Drain(context.Background(), testListID)
	require.NoError(t, err)
	return changes
}

func TestAddItem_WritesStoreAndQueue(t *testing.T) {
	ctx := context.Background()
	svc, db, notifier := newListFixture(t)

	item, err := svc.AddItem(ctx, "Milk", nil)
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	got, err := items.NewSQLiteRepository(db).Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Text)
	assert.Nil(t, got.CategoryID)
	assert.False(t, got.Completed)

	changes := drain(t, db)
	require.Len(t, changes, 1)
	assert.Equal(t, models.OpItemAdd, changes[0].Op)
	p, err := changes[0].ItemPayload()
	require.NoError(t, err)
	assert.Equal(t, item.ID, p.ID)
	assert.Equal(t, "Milk", p.Text)

	assert.Equal(t, 1, notifier.n)
}

func TestEditItem_QueuesWholeRecordUpdate(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newListFixture(t)

	cat, err := svc.AddCategory(ctx, "Dairy")
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, "Milk", nil)
	require.NoError(t, err)

	require.NoError(t, svc.SetCompleted(ctx, item.ID, true))
	require.NoError(t, svc.EditItem(ctx, item.ID, "Whole milk", &cat.ID))

	got, err := items.NewSQLiteRepository(db).Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Whole milk", got.Text)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, cat.ID, *got.CategoryID)

	changes := drain(t, db)
	require.Len(t, changes, 4)
	last, err := changes[3].ItemPayload()
	require.NoError(t, err)
	// Edits carry the full record so the server applies them whole.
	assert.Equal(t, "Whole milk", last.Text)
	assert.True(t, last.Completed)
}

func TestDeleteItem_TombstonesLocally(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newListFixture(t)

	item, err := svc.AddItem(ctx, "Milk", nil)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	visible, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// The row stays until the server confirms the delete.
	got, err := items.NewSQLiteRepository(db).Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	changes := drain(t, db)
	require.Len(t, changes, 2)
	assert.Equal(t, models.OpItemDelete, changes[1].Op)
}

func TestAddCategory_AppendsToOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newListFixture(t)

	a, err := svc.AddCategory(ctx, "Dairy")
	require.NoError(t, err)
	b, err := svc.AddCategory(ctx, "Produce")
	require.NoError(t, err)
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Dairy", cats[0].Name)
	assert.Equal(t, "Produce", cats[1].Name)
}

func TestDeleteCategory_ClearsItemReferences(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newListFixture(t)

	cat, err := svc.AddCategory(ctx, "Dairy")
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, "Milk", &cat.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	// The item survives, uncategorized.
	got, err := items.NewSQLiteRepository(db).Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.False(t, got.Deleted)

	changes := drain(t, db)
	require.Len(t, changes, 3)
	assert.Equal(t, models.OpCategoryDelete, changes[2].Op)
}

func TestReorderCategories(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newListFixture(t)

	a, err := svc.AddCategory(ctx, "Dairy")
	require.NoError(t, err)
	b, err := svc.AddCategory(ctx, "Produce")
	require.NoError(t, err)

	require.NoError(t, svc.ReorderCategories(ctx, []string{b.ID, a.ID}))

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Produce", cats[0].Name)
	assert.Equal(t, "Dairy", cats[1].Name)

	changes := drain(t, db)
	order, err := changes[len(changes)-1].OrderPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, order.IDs)
}

func TestPendingCount(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newListFixture(t)

	n, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = svc.AddItem(ctx, "Milk", nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "Eggs", nil)
	require.NoError(t, err)

	n, err = svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, queue.NewSQLiteRepository(db).Commit(ctx, testListID, 2))
	n, err = svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEditMissingItem_ReturnsError(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newListFixture(t)

	err := svc.EditItem(ctx, "nope", "x", nil)
	require.Error(t, err)
	assert.Equal(t, 0, notifier.n)
}
