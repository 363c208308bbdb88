//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/symgraph/internal/storage"
)

// openStore requires the KuzuDB driver, which is cgo-only.
func openStore(string) (storage.Store, error) {
	return nil, fmt.Errorf("persistent storage requires a cgo-enabled build")
}
