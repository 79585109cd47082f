// Package media stores uploaded post images on the local filesystem.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir is the directory under the media root that post images go to.
const UploadDir = "posts"

// URLPrefix is where stored files are served from.
const URLPrefix = "/media/"

type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) Root() string {
	return s.root
}

// Save writes the uploaded file under UploadDir and returns its path relative
// to the media root. A name that is already taken gets a random suffix.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %v", err)
	}
	defer src.Close()
	return s.write(cleanName(fh.Filename), src)
}

func (s *Storage) write(name string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, UploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %v", err)
	}

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
		dst, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %v", err)
	}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write media file: %v", err)
	}
	return path.Join(UploadDir, name), nil
}

// Remove deletes a file previously returned by Save. A missing file is not
// an error.
func (s *Storage) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path.Clean("/" + name))))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %v", err)
	}
	return nil
}

// URL returns the public address of a stored file, or "" for no file.
func URL(name string) string {
	if name == "" {
		return ""
	}
	return URLPrefix + name
}

func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20, strings.ContainsRune(`/:*?"<>|`, r):
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = uuid.NewString()
	}
	return name
}
