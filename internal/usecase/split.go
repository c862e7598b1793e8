package usecase

import (
	"context"
	"fmt"
	"strings"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
)

// SplitRemoved moves items whose status is removed out of the catalog at
// itemsPath into removedPath. Both files are rewritten.
func SplitRemoved(ctx context.Context, catalogs ports.CatalogRepository, itemsPath, removedPath string) (kept, removed int, err error) {
	items, err := catalogs.Load(ctx, itemsPath)
	if err != nil {
		return 0, 0, fmt.Errorf("load items: %w", err)
	}

	keep, gone := PartitionRemoved(items)

	if err := catalogs.Save(ctx, itemsPath, keep); err != nil {
		return 0, 0, fmt.Errorf("save items: %w", err)
	}
	if err := catalogs.Save(ctx, removedPath, gone); err != nil {
		return 0, 0, fmt.Errorf("save removed items: %w", err)
	}
	return len(keep), len(gone), nil
}

// PartitionRemoved splits entities on a case-insensitive removed status.
func PartitionRemoved(items []domain.Entity) (kept, removed []domain.Entity) {
	kept = make([]domain.Entity, 0, len(items))
	removed = make([]domain.Entity, 0)
	for _, it := range items {
		if strings.EqualFold(string(it.Status), string(domain.StatusRemoved)) {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	return kept, removed
}
