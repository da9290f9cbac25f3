package domain

import "io"

// MediaStore persists uploaded binaries and returns a stable, web-addressable
// relative reference (infrastructure port).
type MediaStore interface {
	// Save writes the payload under a collision-resistant name derived from
	// originalName and returns the relative reference for the stored file.
	Save(originalName string, payload io.Reader) (string, error)
}
