// Package blob stores uploaded proof files and hands back an opaque reference.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path under which stored files are served
const PublicPrefix = "/uploads"

// DiskStore writes files into a local directory
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store rooted there
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to
func (s *DiskStore) Dir() string { return s.dir }

// Save copies r into a new uniquely named file keeping the original extension,
// and returns its public reference such as "/uploads/<uuid>.pdf".
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + cleanExt(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write proof file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close proof file: %w", err)
	}
	return PublicPrefix + "/" + name, nil
}

// Delete removes a file previously returned by Save. Unknown references are ignored.
func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	name := strings.TrimPrefix(ref, PublicPrefix+"/")
	if name == ref || name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("not a stored proof reference: %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove proof file: %w", err)
	}
	return nil
}

func cleanExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		return ""
	}
	return ext
}
