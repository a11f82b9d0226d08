package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalakin/cartsync/internal/common"
)

func TestListCreateAndShare(t *testing.T) {
	rm := newFakeRM()
	svc := NewListService(nil, rm)
	ctx := context.Background()

	owner, err := rm.users.Create(ctx, userWithEmail("owner@example.com"))
	require.NoError(t, err)
	friend, err := rm.users.Create(ctx, userWithEmail("friend@example.com"))
	require.NoError(t, err)

	listID, err := svc.Create(ctx, owner.ID, "groceries")
	require.NoError(t, err)
	require.NotEmpty(t, listID)

	ok, err := rm.lists.HasAccess(ctx, listID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok, "owner gets access on create")

	require.NoError(t, svc.Share(ctx, owner.ID, listID, "friend@example.com"))
	ok, err = rm.lists.HasAccess(ctx, listID, friend.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestShare_RequiresAccess(t *testing.T) {
	rm := newFakeRM()
	svc := NewListService(nil, rm)
	ctx := context.Background()

	owner, err := rm.users.Create(ctx, userWithEmail("owner@example.com"))
	require.NoError(t, err)
	stranger, err := rm.users.Create(ctx, userWithEmail("stranger@example.com"))
	require.NoError(t, err)

	listID, err := svc.Create(ctx, owner.ID, "groceries")
	require.NoError(t, err)

	err = svc.Share(ctx, stranger.ID, listID, "stranger@example.com")
	assert.ErrorIs(t, err, common.ErrAccessDenied)
}

func TestShare_UnknownEmail(t *testing.T) {
	rm := newFakeRM()
	svc := NewListService(nil, rm)
	ctx := context.Background()

	owner, err := rm.users.Create(ctx, userWithEmail("owner@example.com"))
	require.NoError(t, err)

	listID, err := svc.Create(ctx, owner.ID, "groceries")
	require.NoError(t, err)

	err = svc.Share(ctx, owner.ID, listID, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
