package media

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"eventscatalogue/internal/domain"
)

// unsafeFilenameChars matches everything outside the allowed filename alphabet.
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

const tokenLength = 12

var tokenAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// LocalStore persists uploads on the local filesystem under dir and serves
// them under urlPrefix (e.g. "/images").
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore returns a MediaStore writing into dir. The directory is
// created on first save, not here, so a misconfigured path fails the upload
// rather than process start.
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}
}

var _ domain.MediaStore = (*LocalStore)(nil)

// Save writes the payload to disk under a collision-resistant name and
// returns the web-addressable relative reference. A zero-byte payload is
// accepted; content is not inspected.
func (s *LocalStore) Save(originalName string, payload io.Reader) (string, error) {
	data, err := io.ReadAll(payload)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(originalName, "_")
	ext := filepath.Ext(sanitized)

	token, err := randomToken(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate filename token: %w", err)
	}
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), token, ext)

	// MkdirAll is a no-op when the directory exists; a concurrent create by
	// another handler is not an error.
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	// Single write to the final path; the reference is only returned after
	// the write completed, so a reader never sees a partial file.
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.urlPrefix + "/" + filename, nil
}

func randomToken(length int) (string, error) {
	b := make([]rune, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return string(b), nil
}
