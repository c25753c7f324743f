package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, fileName, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldName, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fh, err := req.FormFile(FieldName)
	require.NoError(t, err)
	return fh
}

func TestSaveWritesFile(t *testing.T) {
	store := NewStore(t.TempDir())

	stored, err := store.Save(makeFileHeader(t, "contract.pdf", "application/pdf", []byte("%PDF-1.4 hello")))
	require.NoError(t, err)

	assert.Equal(t, "contract.pdf", stored.OriginalName)
	assert.True(t, strings.HasSuffix(stored.StoredName, ".pdf"),
		"extension must be preserved, got %s", stored.StoredName)
	assert.NotEqual(t, "contract.pdf", stored.StoredName,
		"base name must be replaced by a generated token")

	content, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 hello"), content)
}

func TestSaveCreatesDirectoryOnFirstUse(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewStore(dir)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	_, err = store.Save(makeFileHeader(t, "a.pdf", "application/pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveRejectsDeclaredNonPDF(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// The payload is valid PDF bytes; only the declared type counts. This
	// is the documented weak check, not content sniffing.
	_, err := store.Save(makeFileHeader(t, "contract.pdf", "text/plain", []byte("%PDF-1.4")))
	assert.ErrorIs(t, err, ErrNotPDF)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a rejected upload must not leave a file behind")
}

func TestSaveSameOriginalNameInRapidSuccession(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.Save(makeFileHeader(t, "contract.pdf", "application/pdf", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(makeFileHeader(t, "contract.pdf", "application/pdf", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	for _, stored := range []*StoredFile{first, second} {
		_, err := os.Stat(stored.Path)
		assert.NoError(t, err)
	}
}

func TestSaveKeepsOddExtensions(t *testing.T) {
	store := NewStore(t.TempDir())

	// The declared type decides acceptance; the extension is carried over
	// verbatim, whatever it is.
	stored, err := store.Save(makeFileHeader(t, "scan", "application/pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.NotContains(t, stored.StoredName, ".")
}
