package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage 本地磁盘存储，root 对应地址前缀 uploads/
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Move(_ context.Context, srcPath, key, _ string) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	if err := os.Rename(srcPath, dst); err != nil {
		var linkErr *os.LinkError
		if !errors.As(err, &linkErr) {
			return "", err
		}
		// 跨设备时退化为复制
		if err := copyFile(srcPath, dst); err != nil {
			return "", err
		}
		_ = os.Remove(srcPath)
	}

	return path.Join(UploadURLPrefix, key), nil
}

func (s *LocalStorage) Remove(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, UploadURLPrefix+"/")
	if !ok {
		return fmt.Errorf("attachment %q is not managed by local storage", url)
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// copyFile 先写入同目录临时文件再重命名，避免留下半个文件
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := filepath.Join(filepath.Dir(dst), "."+uuid.NewString()+".part")
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
