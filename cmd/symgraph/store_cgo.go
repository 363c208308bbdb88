//go:build cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/symgraph/internal/storage"
)

// openStore opens the persistent KuzuDB-backed graph store.
func openStore(dbPath string) (storage.Store, error) {
	store, err := storage.NewKuzuFileStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open graph store: %w", err)
	}
	return store, nil
}
