package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/countycontacts/internal/core"
)

// File stores the contact document as indented JSON on disk.
type File struct {
	path string
	mode os.FileMode
}

// NewFile returns a backend for the JSON document at path.
func NewFile(path string) *File {
	return &File{path: path, mode: 0o644}
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

// Load reads the document, writing an empty one first if the file is missing.
func (f *File) Load(ctx context.Context) (map[string]core.Contact, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := make(map[string]core.Contact)
		if err := f.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	doc := make(map[string]core.Contact)
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return doc, nil
}

// Save replaces the document via a temp file and rename, so readers never
// see a partially written file.
func (f *File) Save(ctx context.Context, doc map[string]core.Contact) error {
	if doc == nil {
		doc = map[string]core.Contact{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode contacts: %w", err)
	}
	return writeFile(f.path, b, f.mode)
}

func writeFile(path string, b []byte, mode os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := tmpFile.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := tmpFile.Write(b); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(mode); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
