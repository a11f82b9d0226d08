package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/dbx"
	"github.com/ebalakin/cartsync/internal/server/models"
	"github.com/ebalakin/cartsync/internal/server/repositories/categories"
	"github.com/ebalakin/cartsync/internal/server/repositories/items"
	"github.com/ebalakin/cartsync/internal/server/repositories/lists"
	"github.com/ebalakin/cartsync/internal/server/repositories/users"
)

// The fakes below mirror the write semantics of the PostgreSQL repositories:
// tombstoned rows are immutable, dangling category references resolve to
// nil, and SelectUpdated returns rows strictly newer than the cursor.

type fakeUsers struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*models.User)}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.nextID++
	user.ID = fmt.Sprintf("u-%d", f.nextID)
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeLists struct {
	access map[string]map[string]bool
	order  map[string][]string
	nextID int
}

func newFakeLists() *fakeLists {
	return &fakeLists{access: make(map[string]map[string]bool), order: make(map[string][]string)}
}

func (f *fakeLists) Create(ctx context.Context, list *models.List) (*models.List, error) {
	f.nextID++
	list.ID = fmt.Sprintf("l-%d", f.nextID)
	f.order[list.ID] = []string{}
	return list, f.Grant(ctx, list.ID, list.OwnerID)
}

func (f *fakeLists) HasAccess(ctx context.Context, listID, userID string) (bool, error) {
	return f.access[listID][userID], nil
}

func (f *fakeLists) Grant(ctx context.Context, listID, userID string) error {
	if f.access[listID] == nil {
		f.access[listID] = make(map[string]bool)
	}
	f.access[listID][userID] = true
	return nil
}

func (f *fakeLists) GetCategoryOrder(ctx context.Context, listID string) ([]string, error) {
	return f.order[listID], nil
}

func (f *fakeLists) SetCategoryOrder(ctx context.Context, listID string, order []string) error {
	f.order[listID] = order
	return nil
}

type fakeCategories struct {
	rows map[string]models.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{rows: make(map[string]models.Category)}
}

func (f *fakeCategories) CreateOrUpdate(ctx context.Context, c *models.Category) error {
	if old, ok := f.rows[c.ID]; ok && (old.Deleted || old.ListID != c.ListID) {
		return nil
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) Tombstone(ctx context.Context, listID, id string, t int64) error {
	old, ok := f.rows[id]
	if ok && (old.Deleted || old.ListID != listID) {
		return nil
	}
	f.rows[id] = models.Category{ID: id, ListID: listID, UpdatedAt: t, Deleted: true}
	return nil
}

func (f *fakeCategories) SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.rows {
		if c.ListID == listID && c.UpdatedAt > since {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt < out[j].UpdatedAt })
	return out, nil
}

func (f *fakeCategories) live(id, listID string) bool {
	c, ok := f.rows[id]
	return ok && c.ListID == listID && !c.Deleted
}

type fakeItems struct {
	rows map[string]models.Item
	cats *fakeCategories
}

func newFakeItems(cats *fakeCategories) *fakeItems {
	return &fakeItems{rows: make(map[string]models.Item), cats: cats}
}

func (f *fakeItems) CreateOrUpdate(ctx context.Context, it *models.Item) error {
	if old, ok := f.rows[it.ID]; ok && (old.Deleted || old.ListID != it.ListID) {
		return nil
	}
	row := *it
	if row.CategoryID != nil && !f.cats.live(*row.CategoryID, row.ListID) {
		row.CategoryID = nil
	}
	f.rows[row.ID] = row
	return nil
}

func (f *fakeItems) Tombstone(ctx context.Context, listID, id string, t int64) error {
	old, ok := f.rows[id]
	if ok && (old.Deleted || old.ListID != listID) {
		return nil
	}
	f.rows[id] = models.Item{ID: id, ListID: listID, UpdatedAt: t, Deleted: true}
	return nil
}

func (f *fakeItems) SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Item, error) {
	var out []models.Item
	for _, it := range f.rows {
		if it.ListID == listID && it.UpdatedAt > since {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt < out[j].UpdatedAt })
	return out, nil
}

func (f *fakeItems) ClearCategory(ctx context.Context, listID, categoryID string, t int64) error {
	for id, it := range f.rows {
		if it.ListID == listID && !it.Deleted && it.CategoryID != nil && *it.CategoryID == categoryID {
			it.CategoryID = nil
			it.UpdatedAt = t
			f.rows[id] = it
		}
	}
	return nil
}

type fakeRM struct {
	users *fakeUsers
	lists *fakeLists
	items *fakeItems
	cats  *fakeCategories
}

func newFakeRM() *fakeRM {
	cats := newFakeCategories()
	return &fakeRM{
		users: newFakeUsers(),
		lists: newFakeLists(),
		items: newFakeItems(cats),
		cats:  cats,
	}
}

func (m *fakeRM) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRM) Users(db dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRM) Lists(db dbx.DBTX) lists.Repository           { return m.lists }
func (m *fakeRM) Items(db dbx.DBTX) items.Repository           { return m.items }
func (m *fakeRM) Categories(db dbx.DBTX) categories.Repository { return m.cats }

func userWithEmail(email string) *models.User {
	return &models.User{Email: email, PasswordHash: []byte("hash")}
}
