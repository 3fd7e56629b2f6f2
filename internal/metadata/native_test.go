package metadata_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photodate/internal/metadata"
)

func TestNativeReaderNoExif(t *testing.T) {
	dir := t.TempDir()
	jpg := filepath.Join(dir, "plain.jpg")
	if err := os.WriteFile(jpg, []byte("not really a jpeg"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mov := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(mov, []byte("mov"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var r metadata.NativeReader
	for _, path := range []string{jpg, mov} {
		if _, ok, err := r.ReadDate(context.Background(), path); ok || err != nil {
			t.Fatalf("ReadDate(%s) = %v, %v; want no date", path, ok, err)
		}
	}
	if r.Supports(mov) || !r.Supports(filepath.Join(dir, "X.JPEG")) {
		t.Fatal("unexpected Supports result")
	}
}

func TestNativeReaderIsReadOnly(t *testing.T) {
	var r metadata.NativeReader
	err := r.WriteDate(context.Background(), "/any.jpg", time.Now())
	if !errors.Is(err, metadata.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestOpenFallsBackWhenOptional(t *testing.T) {
	opts := metadata.OpenOptions{Session: metadata.SessionOptions{Binary: filepath.Join(t.TempDir(), "no-exiftool")}}
	store, mode, err := metadata.Open(opts, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if mode != metadata.ModeNative {
		t.Fatalf("expected native mode, got %s", mode)
	}

	opts.Required = true
	if _, _, err := metadata.Open(opts, nil); !errors.Is(err, metadata.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
}
