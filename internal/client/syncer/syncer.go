// Package syncer drives the client's synchronization cycles: draining the
// mutation queue, sending one batched request, and reconciling the server's
// authoritative response into the local store.
package syncer

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/client/repositories/categories"
	"github.com/ebalakin/cartsync/internal/client/repositories/items"
	"github.com/ebalakin/cartsync/internal/client/repositories/metadata"
	"github.com/ebalakin/cartsync/internal/client/repositories/queue"
	"github.com/ebalakin/cartsync/internal/client/transport"
	"github.com/ebalakin/cartsync/internal/dbx"
	"github.com/ebalakin/cartsync/internal/logging"
)

// State is the sync cycle state. A cycle moves from idle through sending
// and applying back to idle, or ends in failed on error.
type State string

const (
	StateIdle     State = "idle"
	StateSending  State = "sending"
	StateApplying State = "applying"
	StateFailed   State = "failed"
)

// Syncer runs sync cycles for one list. Only one cycle may be active at a
// time; a trigger arriving while a cycle runs is dropped, not queued, since
// cycles are idempotent and a redundant trigger carries no information.
type Syncer struct {
	db     *sql.DB
	client transport.Client
	logger logging.Logger
	listID string

	mu      sync.Mutex
	state   State
	lastErr error

	online atomic.Bool
}

// New returns a Syncer for the given list bound to the local database and
// the remote transport.
func New(db *sql.DB, client transport.Client, logger logging.Logger, listID string) *Syncer {
	return &Syncer{
		db:     db,
		client: client,
		logger: logger.With("component", "syncer", "list", listID),
		listID: listID,
		state:  StateIdle,
	}
}

// SetOnline records the device's connectivity as seen by the status watcher.
// An offline syncer completes triggers immediately without a network attempt.
func (s *Syncer) SetOnline(v bool) { s.online.Store(v) }

// Online reports the last known connectivity.
func (s *Syncer) Online() bool { return s.online.Load() }

// State returns the current cycle state.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent cycle failure, cleared by the next
// successful cycle. Non-nil values back the "sync failed" status indicator.
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// TrySync starts a cycle unless one is already active. Returns false when
// the trigger was coalesced into the running cycle.
func (s *Syncer) TrySync(ctx context.Context) bool {
	if !s.begin() {
		return false
	}
	defer s.end()
	s.runCycle(ctx)
	return true
}

// begin claims the single cycle slot.
func (s *Syncer) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return false
	}
	s.state = StateSending
	return true
}

func (s *Syncer) end() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Syncer) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Syncer) fail(ctx context.Context, err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.lastErr = err
	s.mu.Unlock()
	s.logger.Warn(ctx, "sync cycle failed", "error", err.Error())
}

// runCycle performs one full cycle. On any failure the queue and cursor are
// left untouched; the next trigger retries with the same (possibly larger)
// queue.
func (s *Syncer) runCycle(ctx context.Context) {
	if !s.Online() {
		return
	}

	queueRepo := queue.NewSQLiteRepository(s.db)
	changes, mark, err := queueRepo.Drain(ctx, s.listID)
	if err != nil {
		s.fail(ctx, fmt.Errorf("draining queue: %w", err))
		return
	}

	cursor, err := s.Cursor(ctx)
	if err != nil {
		s.fail(ctx, fmt.Errorf("reading cursor: %w", err))
		return
	}

	req := s.buildRequest(ctx, changes, cursor)

	resp, err := s.client.Sync(ctx, s.listID, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}

	s.setState(StateApplying)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.applyResponse(ctx, tx, resp); err != nil {
			return err
		}
		if err := queue.NewSQLiteRepository(tx).Commit(ctx, s.listID, mark); err != nil {
			return err
		}
		return setCursor(ctx, metadata.NewSQLiteRepository(tx), s.listID, resp.Timestamp)
	})
	if err != nil {
		s.fail(ctx, fmt.Errorf("applying response: %w", err))
		return
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	s.logger.Info(ctx, "sync cycle complete",
		"sent", len(changes), "items", len(resp.ItemChanges), "categories", len(resp.CategoryChanges))
}

// buildRequest partitions queued records into the item and category change
// streams and extracts the most recent category_order record as the desired
// canonical order: last write within the batch wins before the server even
// sees it. A record whose payload no longer decodes is logged and skipped.
func (s *Syncer) buildRequest(ctx context.Context, changes []*models.Change, cursor int64) *api.SyncRequest {
	req := &api.SyncRequest{
		ItemChanges:     []api.ItemChange{},
		CategoryChanges: []api.CategoryChange{},
		LastSync:        cursor,
	}

	for _, c := range changes {
		switch c.Op {
		case models.OpItemAdd, models.OpItemUpdate, models.OpItemDelete:
			p, err := c.ItemPayload()
			if err != nil {
				s.logger.Warn(ctx, "skipping undecodable queue record", "seq", c.Seq, "error", err.Error())
				continue
			}
			req.ItemChanges = append(req.ItemChanges, api.ItemChange{
				Type:       changeType(c.Op),
				ID:         p.ID,
				CategoryID: p.CategoryID,
				Text:       p.Text,
				Completed:  p.Completed,
				Timestamp:  c.ClientTS,
			})
		case models.OpCategoryAdd, models.OpCategoryUpdate, models.OpCategoryDelete:
			p, err := c.CategoryPayload()
			if err != nil {
				s.logger.Warn(ctx, "skipping undecodable queue record", "seq", c.Seq, "error", err.Error())
				continue
			}
			req.CategoryChanges = append(req.CategoryChanges, api.CategoryChange{
				Type:      changeType(c.Op),
				ID:        p.ID,
				Name:      p.Name,
				SortOrder: p.SortOrder,
				Timestamp: c.ClientTS,
			})
		case models.OpCategoryOrder:
			p, err := c.OrderPayload()
			if err != nil {
				s.logger.Warn(ctx, "skipping undecodable queue record", "seq", c.Seq, "error", err.Error())
				continue
			}
			req.CategoryOrder = p.IDs
		}
	}
	return req
}

// applyResponse reconciles the server delta into the local store: update
// rows are upserted, delete rows are physically removed (the server keeps
// the tombstone, the device need not), and the canonical category order is
// rewritten wholesale.
func (s *Syncer) applyResponse(ctx context.Context, tx dbx.DBTX, resp *api.SyncResponse) error {
	itemRepo := items.NewSQLiteRepository(tx)
	categoryRepo := categories.NewSQLiteRepository(tx)

	for _, ch := range resp.CategoryChanges {
		if ch.Type == api.ChangeDelete {
			if err := categoryRepo.Delete(ctx, ch.ID); err != nil {
				return err
			}
			// Local rows pointing at the dead category move to
			// "Uncategorized"; the delta carries the reassigned rows too,
			// but an offline-created item may reference the category
			// without the server knowing yet.
			if err := itemRepo.ClearCategory(ctx, s.listID, ch.ID); err != nil {
				return err
			}
			continue
		}
		if err := categoryRepo.Put(ctx, &models.Category{
			ID:        ch.ID,
			ListID:    s.listID,
			Name:      ch.Name,
			SortOrder: ch.SortOrder,
			UpdatedAt: ch.Timestamp,
		}); err != nil {
			return err
		}
	}

	for _, ch := range resp.ItemChanges {
		if ch.Type == api.ChangeDelete {
			if err := itemRepo.Delete(ctx, ch.ID); err != nil {
				return err
			}
			continue
		}
		if err := itemRepo.Put(ctx, &models.Item{
			ID:         ch.ID,
			ListID:     s.listID,
			CategoryID: ch.CategoryID,
			Text:       ch.Text,
			Completed:  ch.Completed,
			UpdatedAt:  ch.Timestamp,
		}); err != nil {
			return err
		}
	}

	return categoryRepo.SetOrder(ctx, s.listID, resp.CategoryOrder)
}

// Cursor returns the persisted sync cursor, 0 when the device has never
// completed a cycle.
func (s *Syncer) Cursor(ctx context.Context) (int64, error) {
	return getCursor(ctx, metadata.NewSQLiteRepository(s.db), s.listID)
}

func cursorKey(listID string) string { return "last_sync:" + listID }

func getCursor(ctx context.Context, repo metadata.Repository, listID string) (int64, error) {
	raw, err := repo.Get(ctx, cursorKey(listID))
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt sync cursor: %w", err)
	}
	return v, nil
}

func setCursor(ctx context.Context, repo metadata.Repository, listID string, v int64) error {
	return repo.Set(ctx, cursorKey(listID), []byte(strconv.FormatInt(v, 10)))
}

func changeType(op models.Op) api.ChangeType {
	switch op {
	case models.OpItemAdd, models.OpCategoryAdd:
		return api.ChangeAdd
	case models.OpItemDelete, models.OpCategoryDelete:
		return api.ChangeDelete
	default:
		return api.ChangeUpdate
	}
}

// Now returns the client-local timestamp recorded on queued changes. It
// orders edits within one offline session only; the server overwrites it.
func Now() int64 { return time.Now().UnixMilli() }
