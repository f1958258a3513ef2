package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datasetforge/pkg/config"
	"datasetforge/pkg/errutil"
	"datasetforge/pkg/llm"

	"go.uber.org/zap"
)

// Service runs the template pipeline: infer the field schema of an
// uploaded spreadsheet, generate synthetic rows for it, and export
// them as CSV or XLSX.
type Service struct {
	router    *llm.Router
	model     string
	outputDir string
}

func NewService(router *llm.Router, cfg *config.Config) *Service {
	return &Service{
		router:    router,
		model:     cfg.Model.Name,
		outputDir: cfg.Storage.OutputDir,
	}
}

// Generate produces exactly rowCount rows for the template at path and
// writes them to an output file namespaced by task ID.
func (s *Service) Generate(ctx context.Context, taskID, path string, rowCount int, format string) (*Result, error) {
	tpl, err := InferFields(path)
	if err != nil {
		return nil, err
	}
	if len(tpl.Fields) == 0 {
		return nil, errutil.UnprocessableEntity("template defines no fields")
	}

	rows := s.generateRows(ctx, tpl, rowCount)

	dir := filepath.Join(s.outputDir, taskID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errutil.Internal("error creating output directory", errutil.WithErr(err))
	}

	outputFile := filepath.Join(dir, "generated_data."+strings.ToLower(format))
	if err := WriteRows(outputFile, tpl, rows, format); err != nil {
		return nil, err
	}

	return &Result{
		OutputFile: outputFile,
		RowCount:   rowCount,
		Format:     strings.ToLower(format),
	}, nil
}

// generateRows asks the model once and reconciles against the
// requested count: shortfall is backfilled by fallback rows, surplus
// truncated from the tail.
func (s *Service) generateRows(ctx context.Context, tpl *Template, count int) []Row {
	if count <= 0 {
		return []Row{}
	}

	rows := s.fromModel(ctx, tpl, count)

	if len(rows) < count {
		rows = append(rows, fallbackRows(tpl, count-len(rows))...)
	}
	if len(rows) > count {
		rows = rows[:count]
	}
	return rows
}

func (s *Service) fromModel(ctx context.Context, tpl *Template, count int) []Row {
	resp, err := s.router.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: rowPrompt(tpl, count)}},
		Model:       s.model,
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		zap.L().Warn("model call failed, using fallback generation", zap.Error(err))
		return nil
	}

	records := llm.Records(resp.Content, tpl.Names())
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row(record))
	}
	return rows
}

func rowPrompt(tpl *Template, count int) string {
	var fields strings.Builder
	for _, f := range tpl.Fields {
		if tpl.IsStructured {
			fields.WriteString(fmt.Sprintf("- %s (%s): %s", f.Name, f.Type, f.Label))
			if len(f.Choices) > 0 {
				fields.WriteString(fmt.Sprintf(" [Choices: %s]", strings.Join(f.Choices, ", ")))
			}
		} else {
			fields.WriteString(fmt.Sprintf("- %s: Sample value '%s'", f.Name, f.SampleValue))
		}
		fields.WriteString("\n")
	}

	return fmt.Sprintf(`Based on the following field descriptions from a spreadsheet template, generate %d rows of realistic fake data.

Field descriptions:
%s
Requirements:
- Each object must have all the field names as keys
- Generate realistic, diverse values appropriate for each field type:
  * For name fields: Generate realistic full names
  * For email fields: Generate valid email addresses with realistic names and common domains
  * For phone fields: Generate realistic phone numbers in format +1-XXX-XXX-XXXX
  * For address fields: Generate realistic street addresses
  * For city fields: Generate real city names from around the world
  * For date fields: Generate valid dates in YYYY-MM-DD format
  * For age fields: Generate realistic ages between 18-80
  * For salary fields: Generate realistic salary numbers (30000-200000)
  * For integer/decimal fields: Generate appropriate numbers within realistic ranges
  * For select_one fields: Choose one value from the provided choices
  * For select_multiple fields: Choose several of the provided choices, returned as a JSON array
- Ensure data is varied and not repetitive
- For select questions, only use values from the provided choices

Respond with a JSON array of exactly %d objects, no surrounding prose.`, count, fields.String(), count)
}
