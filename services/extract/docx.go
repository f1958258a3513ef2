package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"datasetforge/pkg/errutil"
)

// A .docx file is a zip archive; paragraph text lives in w:t runs
// inside w:p elements of word/document.xml.
func (s *Service) extractDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", errutil.UnprocessableEntity("error extracting text from Word document", errutil.WithErr(err))
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errutil.UnprocessableEntity("error extracting text from Word document", errutil.WithErr(err))
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}

	return "", errutil.UnprocessableEntity("error extracting text from Word document: no document.xml entry")
}

func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var b strings.Builder
	var inRun bool
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", errutil.UnprocessableEntity("error extracting text from Word document", errutil.WithErr(err))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
			}
			if t.Name.Local == "p" {
				b.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
