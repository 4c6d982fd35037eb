package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStorageContract exercises the behaviour every Storage implementation must share.
// newStore must return an empty store for each call.
func runStorageContract(t *testing.T, newStore func(t *testing.T) Storage) {
	ctx := context.Background()

	t.Run("unknown collection is empty", func(t *testing.T) {
		store := newStore(t)

		documents, err := store.GetCollection(ctx, "user-nobody")

		require.NoError(t, err)
		assert.NotNil(t, documents)
		assert.Empty(t, documents)
	})

	t.Run("add and read back ordered by document id", func(t *testing.T) {
		// given
		store := newStore(t)

		// when
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-rent", Fields{"category": "rent", "notes": nil}))
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-food", Fields{"category": "food", "spent": "20"}))

		// then
		documents, err := store.GetCollection(ctx, "user-alice")
		require.NoError(t, err)
		require.Len(t, documents, 2)
		assert.Equal(t, Fields{"category": "food", "spent": "20"}, documents[0])
		assert.Equal(t, "rent", documents[1]["category"])
		assert.Nil(t, documents[1]["notes"])
	})

	t.Run("add replaces whole document", func(t *testing.T) {
		// given
		store := newStore(t)
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-food", Fields{"category": "food", "notes": "weekly"}))

		// when
		err := store.AddDocument(ctx, "user-alice", "doc-food", Fields{"category": "food", "budget": "200"})

		// then
		require.NoError(t, err)
		documents, err := store.GetCollection(ctx, "user-alice")
		require.NoError(t, err)
		require.Len(t, documents, 1)
		assert.Equal(t, Fields{"category": "food", "budget": "200"}, documents[0])
	})

	t.Run("empty keys are rejected", func(t *testing.T) {
		store := newStore(t)

		assert.ErrorIs(t, store.AddDocument(ctx, "", "doc-food", Fields{}), ErrInvalidKey)
		assert.ErrorIs(t, store.AddDocument(ctx, "user-alice", "", Fields{}), ErrInvalidKey)
		assert.ErrorIs(t, store.DeleteDocument(ctx, "user-alice", ""), ErrInvalidKey)
	})

	t.Run("delete removes only the given document", func(t *testing.T) {
		// given
		store := newStore(t)
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-food", Fields{"category": "food"}))
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-rent", Fields{"category": "rent"}))

		// when
		err := store.DeleteDocument(ctx, "user-alice", "doc-food")

		// then
		require.NoError(t, err)
		documents, err := store.GetCollection(ctx, "user-alice")
		require.NoError(t, err)
		require.Len(t, documents, 1)
		assert.Equal(t, "rent", documents[0]["category"])
	})

	t.Run("deleting a missing document succeeds", func(t *testing.T) {
		store := newStore(t)

		assert.NoError(t, store.DeleteDocument(ctx, "user-alice", "doc-none"))
	})

	t.Run("collections are isolated", func(t *testing.T) {
		// given
		store := newStore(t)
		require.NoError(t, store.AddDocument(ctx, "user-alice", "doc-food", Fields{"category": "food"}))
		require.NoError(t, store.AddDocument(ctx, "user-bob", "doc-food", Fields{"category": "food"}))

		// when
		require.NoError(t, store.ClearCollection(ctx, "user-alice"))

		// then
		alice, err := store.GetCollection(ctx, "user-alice")
		require.NoError(t, err)
		assert.Empty(t, alice)
		bob, err := store.GetCollection(ctx, "user-bob")
		require.NoError(t, err)
		assert.Len(t, bob, 1)
	})
}
