package extract

import (
	"strings"

	"datasetforge/pkg/errutil"

	"github.com/ledongthuc/pdf"
)

func (s *Service) extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errutil.UnprocessableEntity("error extracting text from PDF", errutil.WithErr(err))
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", errutil.UnprocessableEntity("error extracting text from PDF", errutil.WithErr(err))
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
