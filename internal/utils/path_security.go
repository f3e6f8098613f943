package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SecureJoin 把附件 key 拼接到存储根目录下，返回绝对路径。
// 拒绝绝对路径、越出根目录的 ".." 以及链路上已存在的符号链接。
func SecureJoin(root, key string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	cleanKey := filepath.Clean(filepath.FromSlash(key))
	if cleanKey == "." {
		cleanKey = ""
	}
	if filepath.IsAbs(cleanKey) || filepath.VolumeName(cleanKey) != "" {
		return "", fmt.Errorf("非法路径: 不允许绝对路径")
	}

	target := filepath.Join(rootAbs, cleanKey)
	if err := ensureWithinRoot(rootAbs, target); err != nil {
		return "", err
	}
	if err := ensureNoSymlink(rootAbs, target); err != nil {
		return "", err
	}
	return target, nil
}

// EnsurePathNotSymlink 路径本身是符号链接时返回错误；路径不存在视为安全。
func EnsurePathNotSymlink(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	info, err := os.Lstat(abs)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("检查路径失败: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("检测到符号链接: %s", abs)
	}
	return nil
}

// ensureNoSymlink 从 target 逐级回溯到 root，已存在的节点都不能是符号链接。
func ensureNoSymlink(root, target string) error {
	for current := target; ; {
		if err := EnsurePathNotSymlink(current); err != nil {
			return err
		}
		if samePath(current, root) {
			return nil
		}
		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return fmt.Errorf("非法路径: 无法回溯到存储根目录")
		}
		current = parent
	}
}

func ensureWithinRoot(root, target string) error {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return fmt.Errorf("非法路径: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("非法路径: 目标超出存储根目录")
	}
	return nil
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
