package extract

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"datasetforge/pkg/errutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtractFileTxt(t *testing.T) {
	svc := NewService()
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("line one\nline two\n"))

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\n", text)

	// Extraction is idempotent for an unmodified file.
	again, err := svc.ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, text, again)
}

func TestExtractFileNoExtensionTreatedAsText(t *testing.T) {
	svc := NewService()
	path := writeFile(t, t.TempDir(), "README", []byte("plain content"))

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, "plain content", text)
}

func TestExtractFileInvalidUTF8(t *testing.T) {
	svc := NewService()
	path := writeFile(t, t.TempDir(), "broken.txt", []byte{0xff, 0xfe, 0x00, 0x41})

	_, err := svc.ExtractFile(path)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)
	require.Contains(t, base.Message, "broken.txt")
}

func TestExtractFileUnsupportedType(t *testing.T) {
	svc := NewService()
	path := writeFile(t, t.TempDir(), "image.png", []byte("not really an image"))

	_, err := svc.ExtractFile(path)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnsupportedMediaType, base.Code)
	require.Contains(t, base.Message, ".png")
}

func TestExtractFileXLSXReturnsSentinel(t *testing.T) {
	svc := NewService()
	// The content is never opened; dispatch happens on extension alone.
	path := writeFile(t, t.TempDir(), "template.xlsx", []byte("ignored"))

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, TemplateSentinel, text)
}

func TestExtractFilesBannersInInputOrder(t *testing.T) {
	svc := NewService()
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", []byte("alpha"))
	second := writeFile(t, dir, "second.txt", []byte("beta"))

	text, err := svc.ExtractFiles([]string{first, second})
	require.NoError(t, err)
	require.Equal(t,
		"\n\n--- Content from first.txt ---\n\nalpha"+
			"\n\n--- Content from second.txt ---\n\nbeta",
		text)
}

func TestExtractFilesFailureAbortsBatch(t *testing.T) {
	svc := NewService()
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", []byte("fine"))
	bad := writeFile(t, dir, "bad.bin", []byte("nope"))

	_, err := svc.ExtractFiles([]string{good, bad})
	require.Error(t, err)
	require.Contains(t, err.Error(), fmt.Sprintf("error processing file %s", bad))
}

func TestExtractZip(t *testing.T) {
	svc := NewService()
	dir := t.TempDir()

	archive := filepath.Join(dir, "bundle.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"docs/readme.txt": "inner text",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	// Unsupported entries inside the archive are silently skipped.
	w, err := zw.Create("assets/logo.png")
	require.NoError(t, err)
	_, err = w.Write([]byte{0x89, 0x50})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := svc.ExtractFile(archive)
	require.NoError(t, err)
	require.Equal(t, "\n\n--- Content from docs/readme.txt ---\n\ninner text", text)
}

func TestExtractDocx(t *testing.T) {
	svc := NewService()
	dir := t.TempDir()

	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	path := filepath.Join(dir, "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(document))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := svc.ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, "First paragraph.\nSecond paragraph.\n", text)
}

func TestExtractDocxMissingDocumentXML(t *testing.T) {
	svc := NewService()
	dir := t.TempDir()

	path := filepath.Join(dir, "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = svc.ExtractFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no document.xml")
}

func TestExtractZipCorruptArchive(t *testing.T) {
	svc := NewService()
	path := writeFile(t, t.TempDir(), "broken.zip", []byte("not a zip"))

	_, err := svc.ExtractFile(path)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)
}
