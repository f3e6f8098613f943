package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("attachment not found")
	ErrUnsupportedType = errors.New("unsupported image content type")
	ErrEmptyContent    = errors.New("empty attachment content")
)

// AcceptedImageTypes 允许作为图片附件的 MIME 类型。
var AcceptedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
}

// Store 二进制对象存储后端。
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Attachment 已保存附件的元数据。
type Attachment struct {
	Key         string
	URL         string
	ContentType string
	Filename    string
	Size        int64
}

// Attachments 在 Store 之上提供 attach / purge / download。
type Attachments struct {
	store Store
	now   func() time.Time
}

func NewAttachments(store Store) *Attachments {
	return &Attachments{store: store, now: time.Now}
}

// DetectImageType 按内容识别类型，不在允许列表内时返回 ErrUnsupportedType。
func DetectImageType(content []byte) (string, string, error) {
	if len(content) == 0 {
		return "", "", ErrEmptyContent
	}
	m := mimetype.Detect(content)
	for _, accepted := range AcceptedImageTypes {
		if m.Is(accepted) {
			return accepted, m.Extension(), nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, m.String())
}

// Attach 识别类型并保存内容，key 形如 2026/10/18/<uuid>.png
func (a *Attachments) Attach(ctx context.Context, filename string, content []byte) (*Attachment, error) {
	contentType, ext, err := DetectImageType(content)
	if err != nil {
		return nil, err
	}

	d := a.now().UTC()
	key := fmt.Sprintf("%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
	if err := a.store.Put(ctx, key, content, contentType); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	return &Attachment{
		Key:         key,
		URL:         a.store.URL(key),
		ContentType: contentType,
		Filename:    sanitizeFilename(filename, ext),
		Size:        int64(len(content)),
	}, nil
}

// Purge 删除附件；空 key 与不存在的附件都视为成功。
func (a *Attachments) Purge(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := a.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("purge attachment: %w", err)
	}
	return nil
}

func (a *Attachments) Download(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	return a.store.Get(ctx, key)
}

const maxFilenameBytes = 255

func sanitizeFilename(name, ext string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "image" + ext
	}
	if len(name) > maxFilenameBytes {
		// 按字符边界截断，避免切开多字节 UTF-8 字符
		cut := maxFilenameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}
