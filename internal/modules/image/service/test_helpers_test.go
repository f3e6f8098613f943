package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	imagerepo "stored-image-server/internal/modules/image/repo"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/storage"
	"stored-image-server/internal/testutils"

	"gorm.io/gorm"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	gifBytes = append([]byte("GIF89a"), make([]byte, 32)...)
	bg       = context.Background()
)

// fakeFetcher 按 URL 返回预置内容。
type fakeFetcher struct {
	responses map[string][]byte
	err       error
	calls     []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*storage.Remote, error) {
	f.calls = append(f.calls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	content, ok := f.responses[rawURL]
	if !ok {
		return nil, errors.New("unexpected status 404")
	}
	return &storage.Remote{Content: content, Filename: filepath.Base(rawURL)}, nil
}

type testEnv struct {
	service *Service
	db      *gorm.DB
	root    string
	fetcher *fakeFetcher
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	root := t.TempDir()
	store, err := storage.NewLocalStore(root, "/attachments/")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	fetcher := &fakeFetcher{responses: map[string][]byte{}}
	svc := New(
		platformservice.NewAppService(),
		imagerepo.NewImageRepository(gdb),
		storage.NewAttachments(store),
		fetcher,
		metrics.New(nil),
	)
	return &testEnv{service: svc, db: gdb, root: root, fetcher: fetcher}
}

func (e *testEnv) seedUser(t *testing.T, username string, isAdmin bool) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", PasswordDigest: "x", IsAdmin: isAdmin}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) seedImage(t *testing.T, owner *model.User, verified bool) *model.StoredImage {
	t.Helper()
	url := "https://cdn.example.com/seed.png"
	img := &model.StoredImage{URL: &url, Verified: verified}
	if owner != nil {
		img.UserID = &owner.ID
	}
	if err := e.db.Create(img).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}
	return img
}

func (e *testEnv) reload(t *testing.T, id uint) *model.StoredImage {
	t.Helper()
	var img model.StoredImage
	if err := e.db.First(&img, id).Error; err != nil {
		t.Fatalf("reload image: %v", err)
	}
	return &img
}

func (e *testEnv) attachmentExists(key string) bool {
	_, err := os.Stat(filepath.Join(e.root, filepath.FromSlash(key)))
	return err == nil
}
