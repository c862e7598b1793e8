package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
)

// CatalogFiles reads and writes whole JSON catalog documents.
type CatalogFiles struct{}

var _ ports.CatalogRepository = (*CatalogFiles)(nil)

// NewCatalogFiles returns the file-backed catalog repository.
func NewCatalogFiles() *CatalogFiles {
	return &CatalogFiles{}
}

// Load decodes the full entity array stored at path. An empty array is a
// valid catalog.
func (c *CatalogFiles) Load(ctx context.Context, path string) ([]domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var entities []domain.Entity
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if entities == nil {
		entities = []domain.Entity{}
	}
	return entities, nil
}

// Save rewrites the catalog in one step: the document goes to a temp file in
// the same directory which then replaces path, so readers never see a
// truncated catalog.
func (c *CatalogFiles) Save(ctx context.Context, path string, entities []domain.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entities == nil {
		entities = []domain.Entity{}
	}

	payload, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	return writeAtomic(path, payload)
}

func writeAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
