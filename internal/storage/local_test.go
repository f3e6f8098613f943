package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证本地存储的读写删除与 URL 拼接。
func TestLocalStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "attachments")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a/b.png", pngBytes, "image/png"))
	_, err = os.Stat(filepath.Join(root, "a", "b.png"))
	require.NoError(t, err)

	got, err := store.Get(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
	assert.Equal(t, "/attachments/a/b.png", store.URL("a/b.png"))

	require.NoError(t, store.Delete(ctx, "a/b.png"))
	assert.ErrorIs(t, store.Delete(ctx, "a/b.png"), ErrNotFound)
}

// 测试内容：验证越界 key 被拒绝。
func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/attachments/")
	require.NoError(t, err)

	assert.Error(t, store.Put(context.Background(), "../evil.png", pngBytes, "image/png"))
	_, err = store.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

// 测试内容：验证空根目录被拒绝。
func TestNewLocalStore_EmptyRoot(t *testing.T) {
	_, err := NewLocalStore(" ", "/attachments/")
	assert.Error(t, err)
}
