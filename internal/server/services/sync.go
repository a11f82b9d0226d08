package services

import (
	"context"
	"database/sql"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/logging"
	"github.com/ebalakin/cartsync/internal/server/clock"
	"github.com/ebalakin/cartsync/internal/server/models"
	"github.com/ebalakin/cartsync/internal/server/repositories/repomanager"
)

// SyncService applies batched client mutations and computes reverse deltas.
//
// Every request is stamped with one server timestamp T from a strictly
// increasing clock, so concurrent requests from different devices are
// totally ordered and last-write-wins resolution is deterministic: whichever
// request the server processes later carries the larger T and overwrites.
//
// Records are applied independently. A record that fails to persist is
// logged and skipped; it neither aborts the batch nor poisons the writes
// that follow it. The client keeps its queue until the response arrives, so
// a skipped record is simply retried on the next cycle.
type SyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       *clock.Clock
	logger      logging.Logger
}

func NewSyncService(db *sql.DB, m repomanager.RepositoryManager, c *clock.Clock, logger logging.Logger) *SyncService {
	return &SyncService{db: db, repomanager: m, clock: c, logger: logger.With("component", "sync")}
}

// Sync handles one batched exchange for a list.
//
// The steps, in order: verify access, stamp the request with T, apply
// category changes, apply item changes, apply the category order, then read
// back everything newer than the caller's cursor. Category changes go first
// so an item added in the same batch can resolve its category reference.
func (s *SyncService) Sync(ctx context.Context, userID, listID string, req *api.SyncRequest) (*api.SyncResponse, error) {

	listRepo := s.repomanager.Lists(s.db)

	ok, err := listRepo.HasAccess(ctx, listID, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrAccessDenied
	}

	t := s.clock.Now()

	s.applyCategoryChanges(ctx, listID, req.CategoryChanges, t)
	s.applyItemChanges(ctx, listID, req.ItemChanges, t)

	if req.CategoryOrder != nil {
		if err := listRepo.SetCategoryOrder(ctx, listID, req.CategoryOrder); err != nil {
			s.logger.Warn(ctx, "skipping category order", "list", listID, "error", err.Error())
		}
	}

	resp, err := s.delta(ctx, listID, req.LastSync)
	if err != nil {
		return nil, err
	}
	resp.Timestamp = t

	return resp, nil
}

func (s *SyncService) applyCategoryChanges(ctx context.Context, listID string, changes []api.CategoryChange, t int64) {
	repo := s.repomanager.Categories(s.db)
	itemRepo := s.repomanager.Items(s.db)

	for _, ch := range changes {
		var err error
		switch ch.Type {
		case api.ChangeDelete:
			// Tombstone the category first so the reassignment below is the
			// last write; items of the category go back to "Uncategorized".
			if err = repo.Tombstone(ctx, listID, ch.ID, t); err == nil {
				err = itemRepo.ClearCategory(ctx, listID, ch.ID, t)
			}
		default:
			err = repo.CreateOrUpdate(ctx, &models.Category{
				ID:        ch.ID,
				ListID:    listID,
				Name:      ch.Name,
				SortOrder: ch.SortOrder,
				UpdatedAt: t,
			})
		}
		if err != nil {
			s.logger.Warn(ctx, "skipping category change", "list", listID, "id", ch.ID, "error", err.Error())
		}
	}
}

func (s *SyncService) applyItemChanges(ctx context.Context, listID string, changes []api.ItemChange, t int64) {
	repo := s.repomanager.Items(s.db)

	for _, ch := range changes {
		var err error
		switch ch.Type {
		case api.ChangeDelete:
			err = repo.Tombstone(ctx, listID, ch.ID, t)
		default:
			err = repo.CreateOrUpdate(ctx, &models.Item{
				ID:         ch.ID,
				ListID:     listID,
				CategoryID: ch.CategoryID,
				Text:       ch.Text,
				Completed:  ch.Completed,
				UpdatedAt:  t,
			})
		}
		if err != nil {
			s.logger.Warn(ctx, "skipping item change", "list", listID, "id", ch.ID, "error", err.Error())
		}
	}
}

// delta collects every row newer than since, tombstones included, plus the
// canonical category order. A since of zero therefore returns the full list
// state, which is how a fresh device bootstraps.
func (s *SyncService) delta(ctx context.Context, listID string, since int64) (*api.SyncResponse, error) {

	items, err := s.repomanager.Items(s.db).SelectUpdated(ctx, listID, since)
	if err != nil {
		return nil, common.ErrorInternal
	}
	cats, err := s.repomanager.Categories(s.db).SelectUpdated(ctx, listID, since)
	if err != nil {
		return nil, common.ErrorInternal
	}
	order, err := s.repomanager.Lists(s.db).GetCategoryOrder(ctx, listID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	resp := &api.SyncResponse{CategoryOrder: order}

	for _, c := range cats {
		ch := api.CategoryChange{
			Type:      api.ChangeUpdate,
			ID:        c.ID,
			Name:      c.Name,
			SortOrder: c.SortOrder,
			Timestamp: c.UpdatedAt,
		}
		if c.Deleted {
			ch.Type = api.ChangeDelete
		}
		resp.CategoryChanges = append(resp.CategoryChanges, ch)
	}

	for _, it := range items {
		ch := api.ItemChange{
			Type:       api.ChangeUpdate,
			ID:         it.ID,
			CategoryID: it.CategoryID,
			Text:       it.Text,
			Completed:  it.Completed,
			Timestamp:  it.UpdatedAt,
		}
		if it.Deleted {
			ch.Type = api.ChangeDelete
		}
		resp.ItemChanges = append(resp.ItemChanges, ch)
	}

	return resp, nil
}
