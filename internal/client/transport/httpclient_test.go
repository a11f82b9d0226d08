package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/common"
)

func TestLogin_StoresTokenForSubsequentRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			json.NewEncoder(w).Encode(api.LoginResponse{AccessToken: "tok123"})
		case "/api/lists":
			gotAuth = r.Header.Get(common.AuthHeaderName)
			json.NewEncoder(w).Encode(api.CreateListResponse{ID: "list-1"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	require.NoError(t, c.Login(context.Background(), "a@b.c", "pw"))

	id, err := c.CreateList(context.Background(), "groceries")
	require.NoError(t, err)
	assert.Equal(t, "list-1", id)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrorUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrAccessDenied},
		{"server error", http.StatusInternalServerError, common.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL)
			err := c.Register(context.Background(), "a@b.c", "pw")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPing_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewHTTPClient(srv.URL)
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestSync_RoundTrip(t *testing.T) {
	var gotReq api.SyncRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/lists/list-1/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(api.SyncResponse{
			ItemChanges:   []api.ItemChange{{Type: api.ChangeUpdate, ID: "i1", Text: "Milk", Timestamp: 100}},
			CategoryOrder: []string{},
			Timestamp:     100,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.Sync(context.Background(), "list-1", &api.SyncRequest{
		ItemChanges: []api.ItemChange{{Type: api.ChangeAdd, ID: "i1", Text: "Milk"}},
		LastSync:    42,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), gotReq.LastSync)
	require.Len(t, resp.ItemChanges, 1)
	assert.Equal(t, "i1", resp.ItemChanges[0].ID)
	assert.Equal(t, int64(100), resp.Timestamp)
}

func TestSync_RetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(api.SyncResponse{Timestamp: 7})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.Sync(context.Background(), "list-1", &api.SyncRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, int64(7), resp.Timestamp)
}

func TestSync_DoesNotRetryOnAccessDenied(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Sync(context.Background(), "list-1", &api.SyncRequest{})
	require.ErrorIs(t, err, common.ErrAccessDenied)
	assert.Equal(t, 1, calls)
}

func TestDo_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, common.ErrMalformedResponse)
}
