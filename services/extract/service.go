package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"datasetforge/pkg/errutil"

	"golang.org/x/sync/errgroup"
)

// TemplateSentinel is returned for spreadsheet templates instead of
// text: the caller must route the file to field inference, not to the
// document pipeline.
const TemplateSentinel = "[XLSX_FILE_FOR_FAKE_DATA_GENERATION]"

// Service normalizes arbitrary input files into plain text.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ExtractFile returns the plain text of a single file, dispatching on
// its extension. Extracting the same unmodified file twice yields
// byte-identical text.
func (s *Service) ExtractFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return s.extractPDF(path)
	case ".docx":
		return s.extractDocx(path)
	case ".txt", "":
		return s.extractTxt(path)
	case ".zip":
		return s.extractZip(path)
	case ".xlsx":
		return TemplateSentinel, nil
	default:
		return "", errutil.UnsupportedMediaType(fmt.Sprintf("unsupported file type: %s", ext))
	}
}

// ExtractFiles extracts every path independently and concatenates the
// results in input order, each prefixed with a banner naming its
// source. A single failure aborts the whole batch; there are no
// partial results.
func (s *Service) ExtractFiles(paths []string) (string, error) {
	texts := make([]string, len(paths))

	g := new(errgroup.Group)
	for i, path := range paths {
		g.Go(func() error {
			text, err := s.ExtractFile(path)
			if err != nil {
				return fmt.Errorf("error processing file %s: %w", path, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	for i, path := range paths {
		b.WriteString(fmt.Sprintf("\n\n--- Content from %s ---\n\n", filepath.Base(path)))
		b.WriteString(texts[i])
	}
	return b.String(), nil
}

func (s *Service) extractTxt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errutil.UnprocessableEntity("error reading text file", errutil.WithErr(err))
	}
	if !utf8.Valid(data) {
		return "", errutil.UnprocessableEntity(fmt.Sprintf("file %s is not valid UTF-8", filepath.Base(path)))
	}
	return string(data), nil
}
