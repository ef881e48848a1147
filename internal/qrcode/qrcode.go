// Package qrcode renders the QR image that ties a physical product label
// back to its record. The code content is the product ID itself.
package qrcode

import (
	"fmt"
	"os"
	"path/filepath"

	qr "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Generator writes product QR images into a directory.
type Generator struct {
	dir string
}

// NewGenerator creates a Generator rooted at dir, creating it if absent.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating qrcode directory: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// CodePath returns the deterministic image reference for a product. It does
// not check that the file exists.
func (g *Generator) CodePath(productID int64) string {
	return filepath.Join(g.dir, fmt.Sprintf("product_%d.png", productID))
}

// Write renders the product's QR code as a PNG file and returns its path.
func (g *Generator) Write(productID int64) (string, error) {
	path := g.CodePath(productID)
	if err := qr.WriteFile(content(productID), qr.Medium, imageSize, path); err != nil {
		return "", fmt.Errorf("writing qr image: %w", err)
	}
	return path, nil
}

// Encode renders the product's QR code as PNG bytes.
func (g *Generator) Encode(productID int64) ([]byte, error) {
	return qr.Encode(content(productID), qr.Medium, imageSize)
}

func content(productID int64) string {
	return fmt.Sprintf("%d", productID)
}
