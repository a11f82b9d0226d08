// Package transport implements the HTTP/JSON client for the cartsync server:
// authentication, the per-list sync exchange, and the liveness probe used by
// the online-status watcher.
package transport

import (
	"context"

	"github.com/ebalakin/cartsync/internal/api"
)

// Client is the remote API surface the sync client depends on. The concrete
// implementation is HTTPClient; tests substitute fakes.
type Client interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	CreateList(ctx context.Context, name string) (string, error)
	ShareList(ctx context.Context, listID, email string) error
	Sync(ctx context.Context, listID string, req *api.SyncRequest) (*api.SyncResponse, error)
	Ping(ctx context.Context) error
	Close() error
}
