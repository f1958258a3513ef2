package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"datasetforge/pkg/errutil"

	"go.uber.org/zap"
)

// extractZip expands an archive and concatenates the text of every
// supported entry, each prefixed with a banner naming its entry path.
// A failing entry is skipped, not fatal. Binary entries are staged to
// a temp file that is removed after the entry regardless of outcome.
func (s *Service) extractZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", errutil.UnprocessableEntity("error extracting text from ZIP file", errutil.WithErr(err))
	}
	defer zr.Close()

	var b strings.Builder
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name))
		switch ext {
		case ".txt", ".pdf", ".docx":
		default:
			continue
		}

		content, err := s.extractZipEntry(entry, ext)
		if err != nil {
			zap.L().Warn("could not extract archive entry",
				zap.String("archive", filepath.Base(path)),
				zap.String("entry", entry.Name),
				zap.Error(err),
			)
			continue
		}

		b.WriteString(fmt.Sprintf("\n\n--- Content from %s ---\n\n", entry.Name))
		b.WriteString(content)
	}

	return b.String(), nil
}

func (s *Service) extractZipEntry(entry *zip.File, ext string) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// Text inside an archive is decoded leniently; invalid bytes are
	// stripped rather than treated as fatal.
	if ext == ".txt" {
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return strings.ToValidUTF8(string(data), ""), nil
	}

	tmp, err := os.CreateTemp("", "extract-*"+ext)
	if err != nil {
		return "", err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, rc); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	switch ext {
	case ".pdf":
		return s.extractPDF(tmp.Name())
	default:
		return s.extractDocx(tmp.Name())
	}
}
