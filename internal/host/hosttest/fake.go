// Package hosttest provides an in-memory host for exercising the export engine in tests.
package hosttest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
)

// ErrNotFound is returned for identities the fake does not know.
var ErrNotFound = errors.New("asset not found")

// Write records one WriteInterchangeFile call.
type Write struct {
	Asset      asset.Handle
	OutputPath string
	Options    host.ExportOptions
}

// Fake is an in-memory host. Zero value is usable; configure it through the
// exported fields and helper methods before handing it to the engine.
type Fake struct {
	mu sync.Mutex

	Selected    []asset.Handle
	Folders     []asset.FolderRef
	SelectErr   error
	FoldersErr  error
	FolderErrs  map[asset.FolderRef]error
	ParamsErr   map[string]error
	DeclineFor  map[string]bool
	FailFor     map[string]error
	SkipWriting bool

	assets   map[string]asset.Handle
	contents map[asset.FolderRef][]asset.Handle
	params   map[string][]string
	values   map[string]map[string]string

	Writes []Write
}

var _ host.Host = (*Fake)(nil)

// New returns an empty Fake.
func New() *Fake {
	return &Fake{}
}

// Asset builds a handle from a class name, registers it and returns it.
func (f *Fake) Asset(identity, className, name string) asset.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	h := asset.Handle{
		Identity:    identity,
		Kind:        asset.KindFromClass(className),
		DisplayName: name,
		ClassName:   className,
		Source:      identity,
	}
	if f.assets == nil {
		f.assets = make(map[string]asset.Handle)
	}
	f.assets[identity] = h
	return h
}

// SetFolder sets the assets a folder expands to, in discovery order.
func (f *Fake) SetFolder(folder asset.FolderRef, assets ...asset.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.contents == nil {
		f.contents = make(map[asset.FolderRef][]asset.Handle)
	}
	f.contents[folder] = assets
}

// BindTexture binds a texture to a material parameter. Parameters keep bind order.
// An empty texture identity declares the parameter without a value.
func (f *Fake) BindTexture(material asset.Handle, param, texture string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.params == nil {
		f.params = make(map[string][]string)
		f.values = make(map[string]map[string]string)
	}
	f.params[material.Identity] = append(f.params[material.Identity], param)
	if f.values[material.Identity] == nil {
		f.values[material.Identity] = make(map[string]string)
	}
	f.values[material.Identity][param] = texture
}

// QueryIndividuallySelected returns Selected.
func (f *Fake) QueryIndividuallySelected(ctx context.Context) ([]asset.Handle, error) {
	if f.SelectErr != nil {
		return nil, f.SelectErr
	}
	return append([]asset.Handle(nil), f.Selected...), nil
}

// QueryCurrentlySelectedFolders returns Folders.
func (f *Fake) QueryCurrentlySelectedFolders(ctx context.Context) ([]asset.FolderRef, error) {
	if f.FoldersErr != nil {
		return nil, f.FoldersErr
	}
	return append([]asset.FolderRef(nil), f.Folders...), nil
}

// ExpandFolder returns the contents set with SetFolder.
func (f *Fake) ExpandFolder(ctx context.Context, folder asset.FolderRef) ([]asset.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FolderErrs[folder]; err != nil {
		return nil, err
	}
	return append([]asset.Handle(nil), f.contents[folder]...), nil
}

// LookupAsset returns a handle registered with Asset.
func (f *Fake) LookupAsset(ctx context.Context, identity string) (asset.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.assets[identity]
	if !ok {
		return asset.Handle{}, fmt.Errorf("%s: %w", identity, ErrNotFound)
	}
	return h, nil
}

// WriteInterchangeFile records the call and, unless SkipWriting is set, writes
// the asset identity to outputPath so artifacts exist on disk.
func (f *Fake) WriteInterchangeFile(ctx context.Context, a asset.Handle, outputPath string, opts host.ExportOptions) (bool, error) {
	f.mu.Lock()
	f.Writes = append(f.Writes, Write{Asset: a, OutputPath: outputPath, Options: opts})
	failErr := f.FailFor[a.Identity]
	decline := f.DeclineFor[a.Identity]
	skip := f.SkipWriting
	f.mu.Unlock()

	if failErr != nil {
		return false, failErr
	}
	if decline {
		return false, nil
	}
	if skip {
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(outputPath, []byte(a.Identity), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// ListTextureParameters returns parameters bound with BindTexture.
func (f *Fake) ListTextureParameters(ctx context.Context, material asset.Handle) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ParamsErr[material.Identity]; err != nil {
		return nil, err
	}
	return append([]string(nil), f.params[material.Identity]...), nil
}

// GetTextureParameterValue resolves a parameter bound with BindTexture.
func (f *Fake) GetTextureParameterValue(ctx context.Context, material asset.Handle, param string) (*asset.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	identity, ok := f.values[material.Identity][param]
	if !ok {
		return nil, fmt.Errorf("parameter %q: %w", param, ErrNotFound)
	}
	if identity == "" {
		return nil, nil
	}
	h, ok := f.assets[identity]
	if !ok {
		return nil, fmt.Errorf("%s: %w", identity, ErrNotFound)
	}
	return &h, nil
}

// WritesFor returns the recorded writes of one asset identity.
func (f *Fake) WritesFor(identity string) []Write {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Write
	for _, w := range f.Writes {
		if w.Asset.Identity == identity {
			out = append(out, w)
		}
	}
	return out
}
