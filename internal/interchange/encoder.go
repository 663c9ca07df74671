// Package interchange is the local host's interchange file writer. It turns
// catalogued source files into the artifacts the export strategies request.
package interchange

import (
	"context"
	"sync"

	"github.com/leefowlercu/assetbridge/internal/asset"
)

// Encoder converts an asset's source bytes into its interchange output.
type Encoder interface {
	// Name returns the encoder's unique identifier.
	Name() string

	// CanEncode reports whether this encoder handles assets of kind.
	CanEncode(kind asset.Kind) bool

	// Encode returns the bytes to write for the asset.
	Encode(ctx context.Context, a asset.Handle, src []byte) ([]byte, error)
}

// Registry selects the encoder for an asset kind.
type Registry struct {
	mu       sync.RWMutex
	encoders []Encoder
	fallback Encoder
}

// NewRegistry creates a registry with the given encoders, tried in order.
func NewRegistry(encoders ...Encoder) *Registry {
	r := &Registry{
		encoders: make([]Encoder, 0, len(encoders)),
	}
	for _, e := range encoders {
		r.Register(e)
	}
	return r
}

// DefaultRegistry returns the texture encoder backed by a pass-through fallback.
func DefaultRegistry() *Registry {
	r := NewRegistry(NewTextureEncoder())
	r.SetFallback(PassthroughEncoder{})
	return r
}

// Register adds an encoder to the registry.
func (r *Registry) Register(e Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders = append(r.encoders, e)
}

// SetFallback sets the encoder used when no registered encoder matches.
func (r *Registry) SetFallback(e Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = e
}

// EncoderFor returns the first encoder that handles kind, else the fallback.
// Returns nil when neither exists.
func (r *Registry) EncoderFor(kind asset.Kind) Encoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.encoders {
		if e.CanEncode(kind) {
			return e
		}
	}
	return r.fallback
}

// ListEncoders returns all registered encoders.
func (r *Registry) ListEncoders() []Encoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Encoder, len(r.encoders))
	copy(result, r.encoders)
	return result
}

// PassthroughEncoder writes the source bytes unchanged.
type PassthroughEncoder struct{}

// Name returns "passthrough".
func (PassthroughEncoder) Name() string {
	return "passthrough"
}

// CanEncode accepts every kind except textures.
func (PassthroughEncoder) CanEncode(kind asset.Kind) bool {
	return kind != asset.KindTexture
}

// Encode returns src.
func (PassthroughEncoder) Encode(ctx context.Context, a asset.Handle, src []byte) ([]byte, error) {
	return src, nil
}
