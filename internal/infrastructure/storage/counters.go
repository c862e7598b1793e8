package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"CounterPicker/internal/domain"
)

// LoadCounters reads the counters knowledge base. A missing file yields an
// empty base, since matchup data is optional.
func LoadCounters(path string) (domain.CountersKB, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.CountersKB{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read counters %s: %w", path, err)
	}

	kb := domain.CountersKB{}
	if err := json.Unmarshal(raw, &kb); err != nil {
		return nil, fmt.Errorf("decode counters %s: %w", path, err)
	}
	return kb, nil
}
