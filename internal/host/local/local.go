// Package local assembles the command-line host: the SQLite catalog as the
// registry and material introspector, a selection source, and the
// interchange writer.
package local

import (
	"github.com/leefowlercu/assetbridge/internal/catalog"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/interchange"
)

// Host is a host.Host backed by local files.
type Host struct {
	*catalog.Catalog
	host.SelectionSource
	*interchange.Writer
}

var _ host.Host = (*Host)(nil)

// New combines the parts into a Host.
func New(cat *catalog.Catalog, src host.SelectionSource, w *interchange.Writer) *Host {
	return &Host{
		Catalog:         cat,
		SelectionSource: src,
		Writer:          w,
	}
}
