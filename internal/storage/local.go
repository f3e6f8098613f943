package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stored-image-server/internal/utils"
)

// LocalStore 本地磁盘存储，文件由 URLPrefix 下的静态路由对外提供。
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("local storage root is empty")
	}
	if err := utils.EnsurePathNotSymlink(root); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	prefix := "/" + strings.Trim(urlPrefix, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	return &LocalStore{root: root, urlPrefix: prefix}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(_ context.Context, key string, content []byte, _ string) error {
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create attachment dir: %w", err)
	}
	return os.WriteFile(target, content, 0644)
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return content, err
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.urlPrefix + strings.TrimLeft(filepath.ToSlash(key), "/")
}
