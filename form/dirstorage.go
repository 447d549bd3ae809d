package form

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirStorage is a FileStorage writing uploads to a local directory.
// Keys are random hex names; the original filename is kept only in the
// FileRef.
type DirStorage struct {
	root string
}

var _ FileStorage = (*DirStorage)(nil)

// NewDirStorage creates the directory if needed and returns a storage
// rooted there.
func NewDirStorage(root string) (*DirStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("form: create upload dir %q: %w", root, err)
	}
	return &DirStorage{root: root}, nil
}

// Save implements FileStorage.
func (d *DirStorage) Save(_ context.Context, name, contentType string, r io.Reader) (FileRef, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return FileRef{}, fmt.Errorf("form: generate upload key: %w", err)
	}
	key := hex.EncodeToString(buf[:])

	f, err := os.Create(filepath.Join(d.root, key))
	if err != nil {
		return FileRef{}, fmt.Errorf("form: create upload %q: %w", key, err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return FileRef{}, fmt.Errorf("form: write upload %q: %w", key, err)
	}
	return FileRef{Key: key, Name: name, ContentType: contentType, Size: size}, nil
}

// Open implements FileStorage.
func (d *DirStorage) Open(_ context.Context, ref FileRef) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.root, ref.Key))
	if err != nil {
		return nil, fmt.Errorf("form: open upload %q: %w", ref.Key, err)
	}
	return f, nil
}

// Delete implements FileStorage. Deleting an unknown key is not an
// error.
func (d *DirStorage) Delete(_ context.Context, ref FileRef) error {
	err := os.Remove(filepath.Join(d.root, ref.Key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("form: delete upload %q: %w", ref.Key, err)
	}
	return nil
}
