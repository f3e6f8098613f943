package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	gifBytes = append([]byte("GIF89a"), make([]byte, 32)...)
)

// 测试内容：验证允许的图片类型被识别，其他类型被拒绝。
func TestDetectImageType(t *testing.T) {
	mime, ext, err := DetectImageType(pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, ".png", ext)

	mime, _, err = DetectImageType(gifBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mime)

	_, _, err = DetectImageType([]byte("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = DetectImageType(nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

// 测试内容：验证 Attach 保存内容、生成按日期分层的 key，并可下载与清除。
func TestAttachments_AttachDownloadPurge(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/attachments/")
	require.NoError(t, err)
	a := NewAttachments(store)
	a.now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	att, err := a.Attach(ctx, "../../cat.png", pngBytes)
	require.NoError(t, err)
	assert.Regexp(t, `^2026/10/18/[0-9a-f-]{36}\.png$`, att.Key)
	assert.Equal(t, "/attachments/"+att.Key, att.URL)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Equal(t, "cat.png", att.Filename)
	assert.Equal(t, int64(len(pngBytes)), att.Size)

	got, err := a.Download(ctx, att.Key)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)

	require.NoError(t, a.Purge(ctx, att.Key))
	_, err = a.Download(ctx, att.Key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, a.Purge(ctx, att.Key))
	require.NoError(t, a.Purge(ctx, ""))
}

// 测试内容：验证不支持的内容不会写入存储。
func TestAttachments_RejectsUnsupported(t *testing.T) {
	rec := &recordingStore{}
	a := NewAttachments(rec)

	_, err := a.Attach(context.Background(), "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, rec.puts)
}

// 测试内容：验证存储写入失败时返回包装后的错误。
func TestAttachments_StoreFailure(t *testing.T) {
	a := NewAttachments(&recordingStore{putErr: errors.New("disk full")})
	_, err := a.Attach(context.Background(), "cat.png", pngBytes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

// 测试内容：验证文件名清洗规则。
func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "image.png", sanitizeFilename("", ".png"))
	assert.Equal(t, "image.png", sanitizeFilename("..", ".png"))
	assert.Equal(t, "a.png", sanitizeFilename(`C:\tmp\a.png`, ".png"))
}

// 测试内容：验证超长多字节文件名按字符边界截断，结果仍是合法 UTF-8。
func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	// 每个汉字 3 字节，第 255 字节落在第 85 个汉字中间
	name := "a" + strings.Repeat("图", 100) + ".png"
	got := sanitizeFilename(name, ".png")
	assert.True(t, utf8.ValidString(got), "截断结果应为合法 UTF-8")
	assert.LessOrEqual(t, len(got), maxFilenameBytes)
	assert.Equal(t, "a"+strings.Repeat("图", 84), got)

	ascii := strings.Repeat("a", 300)
	assert.Equal(t, strings.Repeat("a", maxFilenameBytes), sanitizeFilename(ascii, ".png"))
}

type recordingStore struct {
	puts   int
	putErr error
}

func (r *recordingStore) Put(context.Context, string, []byte, string) error {
	r.puts++
	return r.putErr
}
func (r *recordingStore) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (r *recordingStore) Delete(context.Context, string) error        { return nil }
func (r *recordingStore) URL(key string) string                       { return "/" + key }
