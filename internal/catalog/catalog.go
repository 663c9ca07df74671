// Package catalog is the SQLite-backed asset registry of the local host. It
// stores asset rows and material texture bindings, expands folders and
// answers the material introspection queries of the export engine.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
)

// DefaultContentRoot is the folder every catalog path lives under.
const DefaultContentRoot = "/Game"

// ErrAssetNotFound is returned when an identity is not in the catalog.
var ErrAssetNotFound = errors.New("asset not found")

// ErrAssetExists is returned when adding an identity that is already catalogued.
var ErrAssetExists = errors.New("asset already exists")

// ErrParameterNotFound is returned when a material has no parameter of the given name.
var ErrParameterNotFound = errors.New("texture parameter not found")

// Catalog is the SQLite asset catalog.
type Catalog struct {
	db          *sql.DB
	contentRoot string
	logger      *slog.Logger
}

var (
	_ host.Registry             = (*Catalog)(nil)
	_ host.MaterialIntrospector = (*Catalog)(nil)
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithContentRoot sets the root folder unqualified folder references are placed under.
func WithContentRoot(root string) Option {
	return func(c *Catalog) {
		c.contentRoot = root
	}
}

// WithLogger sets the logger for soft warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// Open opens or creates the catalog database at dbPath and applies pending migrations.
func Open(ctx context.Context, dbPath string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		contentRoot: DefaultContentRoot,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory; %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database; %w", err)
	}
	// One connection keeps the foreign_keys pragma in force for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys; %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode; %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations; %w", err)
	}

	c.db = db
	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// ContentRoot returns the catalog's content root folder.
func (c *Catalog) ContentRoot() string {
	return c.contentRoot
}

// AddAsset inserts a new asset. Missing identity, folder or display name are
// derived from each other.
func (c *Catalog) AddAsset(ctx context.Context, e Entry) error {
	e.normalize(c.contentRoot)
	if err := validateEntry(e); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO assets (identity, class_name, display_name, folder, source_path, skeleton, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		e.Identity, e.ClassName, e.DisplayName, e.Folder, e.SourcePath, e.Skeleton,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%s: %w", e.Identity, ErrAssetExists)
		}
		return fmt.Errorf("failed to add asset; %w", err)
	}

	return nil
}

// RemoveAsset deletes an asset and its texture bindings.
func (c *Catalog) RemoveAsset(ctx context.Context, identity string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM assets WHERE identity = ?", identity)
	if err != nil {
		return fmt.Errorf("failed to remove asset; %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected; %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", identity, ErrAssetNotFound)
	}

	return nil
}

// GetAsset returns the catalog row of identity.
func (c *Catalog) GetAsset(ctx context.Context, identity string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, identity, class_name, display_name, folder, source_path, skeleton, created_at, updated_at
		 FROM assets WHERE identity = ?`,
		identity,
	)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", identity, ErrAssetNotFound)
		}
		return nil, fmt.Errorf("failed to get asset; %w", err)
	}
	return e, nil
}

// LookupAsset resolves an identity to a handle.
func (c *Catalog) LookupAsset(ctx context.Context, identity string) (asset.Handle, error) {
	e, err := c.GetAsset(ctx, identity)
	if err != nil {
		return asset.Handle{}, err
	}
	return e.Handle(), nil
}

// ListAssets returns every asset under folder, recursively, ordered by folder
// then identity. An empty folder lists the whole catalog.
func (c *Catalog) ListAssets(ctx context.Context, folder asset.FolderRef) ([]Entry, error) {
	query := `SELECT id, identity, class_name, display_name, folder, source_path, skeleton, created_at, updated_at
		FROM assets`
	var args []any

	if folder != "" {
		f := string(folder.Normalize(c.contentRoot))
		query += ` WHERE folder = ? OR substr(folder, 1, ?) = ?`
		args = append(args, f, len(f)+1, f+"/")
	}
	query += ` ORDER BY folder, identity`

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets; %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset; %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets; %w", err)
	}

	return entries, nil
}

// ExpandFolder returns the handles of every asset under folder, recursively.
// Rows without a source are omitted with a warning.
func (c *Catalog) ExpandFolder(ctx context.Context, folder asset.FolderRef) ([]asset.Handle, error) {
	if strings.TrimSpace(string(folder)) == "" {
		return nil, errors.New("empty folder reference")
	}

	entries, err := c.ListAssets(ctx, folder)
	if err != nil {
		return nil, err
	}

	handles := make([]asset.Handle, 0, len(entries))
	for _, e := range entries {
		if e.SourcePath == "" {
			c.logger.Warn("asset has no source; skipping", "identity", e.Identity, "folder", folder)
			continue
		}
		handles = append(handles, e.Handle())
	}

	return handles, nil
}

// SetTextureParameter binds texture to a material parameter. An empty texture
// declares the parameter without a value. New parameters are appended after
// the existing ones; rebinding keeps the parameter's position.
func (c *Catalog) SetTextureParameter(ctx context.Context, material, parameter, texture string) error {
	if parameter == "" {
		return errors.New("parameter name is required")
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO texture_parameters (material, parameter, texture, ordinal)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(ordinal), -1) + 1 FROM texture_parameters WHERE material = ?))
		 ON CONFLICT(material, parameter) DO UPDATE SET texture = excluded.texture`,
		material, parameter, texture, material,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("%s: %w", material, ErrAssetNotFound)
		}
		return fmt.Errorf("failed to set texture parameter; %w", err)
	}

	return nil
}

// TextureParameters returns the texture slots of a material in declaration order.
func (c *Catalog) TextureParameters(ctx context.Context, material string) ([]TextureParameter, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT material, parameter, texture, ordinal FROM texture_parameters
		 WHERE material = ? ORDER BY ordinal`,
		material,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list texture parameters; %w", err)
	}
	defer rows.Close()

	var params []TextureParameter
	for rows.Next() {
		var p TextureParameter
		if err := rows.Scan(&p.Material, &p.Parameter, &p.Texture, &p.Ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan texture parameter; %w", err)
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating texture parameters; %w", err)
	}

	return params, nil
}

// ListTextureParameters returns the texture parameter names of a material.
func (c *Catalog) ListTextureParameters(ctx context.Context, material asset.Handle) ([]string, error) {
	if _, err := c.GetAsset(ctx, material.Identity); err != nil {
		return nil, err
	}

	params, err := c.TextureParameters(ctx, material.Identity)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Parameter
	}
	return names, nil
}

// GetTextureParameterValue resolves the texture bound to a material parameter.
// Returns nil without error for a parameter that has no value.
func (c *Catalog) GetTextureParameterValue(ctx context.Context, material asset.Handle, param string) (*asset.Handle, error) {
	var texture string
	err := c.db.QueryRowContext(ctx,
		"SELECT texture FROM texture_parameters WHERE material = ? AND parameter = ?",
		material.Identity, param,
	).Scan(&texture)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s.%s: %w", material.Identity, param, ErrParameterNotFound)
		}
		return nil, fmt.Errorf("failed to get texture parameter; %w", err)
	}

	if texture == "" {
		return nil, nil
	}

	h, err := c.LookupAsset(ctx, texture)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.Identity, &e.ClassName, &e.DisplayName, &e.Folder,
		&e.SourcePath, &e.Skeleton, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func validateEntry(e Entry) error {
	if e.Identity == "" {
		return errors.New("asset identity is required")
	}
	if e.ClassName == "" {
		return fmt.Errorf("asset %s has no class", e.Identity)
	}
	return nil
}
