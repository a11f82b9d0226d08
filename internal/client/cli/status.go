package cli

import (
	"context"
	"fmt"
)

// Sync requests an immediate synchronization attempt and reports whether it
// actually started (another cycle may already be running, or the client may
// be offline).
func (a *App) Sync(ctx context.Context) error {
	if !a.syncer.Online() {
		printlnFn("Offline; changes are queued and will sync when the server is reachable.")
		return nil
	}
	if !a.syncer.TrySync(ctx) {
		printlnFn("A sync cycle is already in progress.")
		return nil
	}
	if err := a.syncer.LastError(); err != nil {
		printlnFn("Sync failed:", err.Error())
		return err
	}
	printlnFn("Synchronized.")
	return nil
}

// Status prints connectivity, sync state and the number of queued mutations.
func (a *App) Status(ctx context.Context) error {
	online := "offline"
	if a.syncer.Online() {
		online = "online"
	}
	pending, err := a.listSvc.PendingCount(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s, sync state: %s, pending mutations: %d", online, a.syncer.State(), pending))
	if err := a.syncer.LastError(); err != nil {
		printlnFn("last sync error:", err.Error())
	}
	return nil
}
