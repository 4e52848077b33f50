package pipeline

import (
	"fmt"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/source"
)

// LoadResult holds a validated snapshot and where it came from.
type LoadResult struct {
	Snapshot *model.Snapshot
	Origin   string
	Records  int
}

// Load reads the snapshot at path, or the embedded seed when path is empty.
func Load(path string) (*LoadResult, error) {
	snap, err := source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	origin := path
	if origin == "" {
		origin = source.SeedName
	}
	return &LoadResult{
		Snapshot: snap,
		Origin:   origin,
		Records:  RecordCount(snap),
	}, nil
}

// RecordCount returns the number of records across every collection.
func RecordCount(snap *model.Snapshot) int {
	return len(snap.Projects) + len(snap.Clients) + len(snap.Invoices) +
		len(snap.Tasks) + len(snap.Notifications) + len(snap.Activities)
}
