// Package fsutil provides filesystem helpers shared by the export pipeline.
package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir and any missing parents. Calling it on an existing
// directory is a no-op; a non-directory at the path is an error.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path exists and is not a directory: %s", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s; %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s; %w", dir, err)
	}
	return nil
}

// AtomicWriteFile writes data to path through a temp file in the same
// directory, fsyncs it and renames it over the target. Readers observe either
// the previous file or the complete new one.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return fmt.Errorf("failed to create temp file; %w", err)
	}
	tempPath := f.Name()

	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file; %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file; %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file; %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions; %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file; %w", err)
	}

	committed = true
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// HashFile computes the SHA-256 hash of a file's contents.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashBytes computes the SHA-256 hash of the provided bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DetectImageMIME determines the image MIME type of content, preferring the
// sniffed type and falling back to the extension. Returns "" when neither
// identifies an image.
func DetectImageMIME(path string, content []byte) string {
	if len(content) > 0 {
		sniffed := http.DetectContentType(content)
		if idx := strings.Index(sniffed, ";"); idx != -1 {
			sniffed = strings.TrimSpace(sniffed[:idx])
		}
		if strings.HasPrefix(sniffed, "image/") {
			return sniffed
		}
	}

	return MIMEFromExtension(filepath.Ext(path))
}

// MIMEFromExtension returns the image MIME type for a file extension.
// The extension may be provided with or without a leading dot.
func MIMEFromExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return imageMIMEs[ext]
}

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tga":  "image/x-tga",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}
