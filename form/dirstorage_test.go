package form

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestDirStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewDirStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStorage: %v", err)
	}

	ref, err := fs.Save(ctx, "cv.pdf", "application/pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ref.Name != "cv.pdf" || ref.ContentType != "application/pdf" || ref.Size != 7 {
		t.Fatalf("ref = %+v", ref)
	}
	if ref.Key == "" || ref.Key == ref.Name {
		t.Fatalf("key = %q, want an opaque storage key", ref.Key)
	}

	rc, err := fs.Open(ctx, ref)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("data = %q", data)
	}
}

func TestDirStorageDelete(t *testing.T) {
	ctx := context.Background()
	fs, err := NewDirStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStorage: %v", err)
	}

	ref, err := fs.Save(ctx, "x.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := fs.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Open(ctx, ref); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open after delete: %v", err)
	}

	// Deleting again is not an error.
	if err := fs.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
}

func TestDirStorageUniqueKeys(t *testing.T) {
	ctx := context.Background()
	fs, err := NewDirStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStorage: %v", err)
	}

	a, err := fs.Save(ctx, "same.txt", "", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := fs.Save(ctx, "same.txt", "", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a.Key == b.Key {
		t.Fatal("two saves share a storage key")
	}
}
