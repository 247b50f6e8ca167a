package storage

import (
	"context"
	"testing"

	"teamprompt/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCacheWarmsFromPrefix(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Set("tp:prompts", `[{"id":"p1"}]`)
	mr.Set("tp:org", `{"name":"Acme"}`)
	mr.Set("other:prompts", `[]`)

	b, err := NewLocalCacheBackend(context.Background(), NewRedisMedium(client), "tp:", nil)
	require.NoError(t, err)
	assert.Len(t, b.cache, 2)
	assert.Contains(t, b.cache, "prompts")
	assert.Contains(t, b.cache, "org")

	// Reads come from the cache even once the durable copy is gone.
	mr.Del("tp:prompts")
	v, ok, err := b.Get(context.Background(), "prompts")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(v))
}

func TestLocalCacheSetWritesThrough(t *testing.T) {
	mr, client := setupTestRedis(t)
	b, err := NewLocalCacheBackend(context.Background(), NewRedisMedium(client), "tp:", nil)
	require.NoError(t, err)

	assert.NoError(t, b.Set(context.Background(), "folders", []byte(`[]`)))
	v, err := mr.Get("tp:folders")
	assert.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestLocalCacheReadsLateKeys(t *testing.T) {
	mr, client := setupTestRedis(t)
	b, err := NewLocalCacheBackend(context.Background(), NewRedisMedium(client), "tp:", nil)
	require.NoError(t, err)

	_, ok, err := b.Get(context.Background(), "teams")
	assert.NoError(t, err)
	assert.False(t, ok)

	mr.Set("tp:teams", `[{"id":"t1"}]`)
	v, ok, err := b.Get(context.Background(), "teams")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"t1"}]`, string(v))
}

func TestLocalCacheFaultKeepsCacheAuthoritative(t *testing.T) {
	_, client := setupTestRedis(t)
	medium := &failingMedium{Medium: NewRedisMedium(client), err: errQuota}
	b, err := NewLocalCacheBackend(context.Background(), medium, "tp:", nil)
	require.NoError(t, err)

	err = b.Set(context.Background(), "prompts", []byte(`[{"id":"p2"}]`))
	assert.Error(t, err)
	assert.True(t, IsFault(err))
	assert.ErrorIs(t, err, errQuota)

	v, ok, err := b.Get(context.Background(), "prompts")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p2"}]`, string(v))
}

func TestLocalCacheOverSQLMedium(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)
	medium, err := NewSQLMedium(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, medium.Write(ctx, "tp:standards", `[{"id":"s1"}]`))
	require.NoError(t, medium.Write(ctx, "tpx_other", `[]`))

	b, err := NewLocalCacheBackend(ctx, medium, "tp:", nil)
	require.NoError(t, err)
	require.Len(t, b.cache, 1)
	assert.JSONEq(t, `[{"id":"s1"}]`, b.cache["standards"])

	require.NoError(t, b.Set(ctx, "standards", []byte(`[{"id":"s2"}]`)))
	v, ok, err := medium.Read(ctx, "tp:standards")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"s2"}]`, v)
}
