package subcommands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leefowlercu/assetbridge/internal/catalog"
	"github.com/leefowlercu/assetbridge/internal/cmdutil"
	"github.com/leefowlercu/assetbridge/internal/config"
)

// openCatalog opens the configured catalog database.
func openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	path, err := cmdutil.ResolvePath(config.GetString("catalog.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path; %w", err)
	}

	cat, err := catalog.Open(ctx, path,
		catalog.WithContentRoot(config.GetString("catalog.content_root")),
		catalog.WithLogger(slog.Default().With("component", "catalog")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog; %w", err)
	}
	return cat, nil
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
