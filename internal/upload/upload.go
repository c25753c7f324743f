// Package upload persists multipart file submissions into the upload
// directory and hands back the metadata the record layer needs.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pranavvermapv/real-estate-crm/pkg/config"
)

// FieldName is the multipart form field a PDF must arrive under.
const FieldName = "pdf"

const pdfMIME = "application/pdf"

// ErrNotPDF is returned when the declared Content-Type of the submitted
// file is anything other than application/pdf.
var ErrNotPDF = errors.New("only PDF files are allowed")

// StoredFile describes a file that has been durably written to the upload
// directory.
type StoredFile struct {
	StoredName   string
	OriginalName string
	Path         string
}

// Store writes uploaded files under a fixed directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the upload directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates the declared MIME type of the submitted file, writes it
// under a collision-resistant name and returns the stored metadata.
//
// The type check is against the declared Content-Type only. The client
// controls that header, so a mislabeled file passes; content sniffing is
// intentionally not done here.
func (s *Store) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh.Header.Get("Content-Type") != pdfMIME {
		return nil, ErrNotPDF
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := s.uniqueName(filepath.Ext(fh.Filename))
	dst := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return &StoredFile{
		StoredName:   name,
		OriginalName: fh.Filename,
		Path:         filepath.Join(s.dir, name),
	}, nil
}

// uniqueName replaces the original base name with a millisecond timestamp,
// keeping the extension. Two uploads landing in the same millisecond would
// collide on the timestamp alone, so an existing name gets a uuid suffix.
func (s *Store) uniqueName(ext string) string {
	base := strconv.FormatInt(time.Now().UnixMilli(), 10)
	name := base + ext
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = base + "_" + uuid.New().String() + ext
	}
	return name
}

var defaultStore *Store

// Init sets up the package-level store from configuration
func Init(cfg *config.Config) {
	defaultStore = NewStore(cfg.Upload.Dir)
}

// Default returns the package-level store
func Default() *Store {
	return defaultStore
}
