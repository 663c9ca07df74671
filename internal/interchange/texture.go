package interchange

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	"image/png"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/fsutil"
)

// DefaultMaxTextureSize is the largest texture source decoded (256MB).
const DefaultMaxTextureSize = 256 * 1024 * 1024

// TextureEncoder decodes raster sources and re-encodes them as PNG.
type TextureEncoder struct {
	maxSize     int64
	compression png.CompressionLevel
}

// TextureEncoderOption configures the TextureEncoder.
type TextureEncoderOption func(*TextureEncoder)

// WithMaxTextureSize sets the largest source size in bytes.
func WithMaxTextureSize(size int64) TextureEncoderOption {
	return func(e *TextureEncoder) {
		e.maxSize = size
	}
}

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) TextureEncoderOption {
	return func(e *TextureEncoder) {
		e.compression = level
	}
}

// NewTextureEncoder creates a TextureEncoder with the given options.
func NewTextureEncoder(opts ...TextureEncoderOption) *TextureEncoder {
	e := &TextureEncoder{
		maxSize:     DefaultMaxTextureSize,
		compression: png.DefaultCompression,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns "texture".
func (e *TextureEncoder) Name() string {
	return "texture"
}

// CanEncode accepts textures.
func (e *TextureEncoder) CanEncode(kind asset.Kind) bool {
	return kind == asset.KindTexture
}

// Encode decodes src as any registered image format and returns it as PNG.
func (e *TextureEncoder) Encode(ctx context.Context, a asset.Handle, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if int64(len(src)) > e.maxSize {
		return nil, fmt.Errorf("texture too large: %d bytes (max %d)", len(src), e.maxSize)
	}

	mimeType := fsutil.DetectImageMIME(a.Source, src)
	if mimeType == "" {
		return nil, fmt.Errorf("texture source %s is not an image", a.Source)
	}

	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s texture; %w", mimeType, err)
	}
	if format == "png" {
		return src, nil
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: e.compression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png; %w", err)
	}
	return buf.Bytes(), nil
}
