package template

import (
	"slices"
	"strings"

	"datasetforge/pkg/errutil"

	"github.com/xuri/excelize/v2"
)

// Structural survey rows that describe layout, not fields.
var structuralTypes = map[string]bool{
	"begin_group":  true,
	"end_group":    true,
	"begin_repeat": true,
	"end_repeat":   true,
	"note":         true,
}

// InferFields parses a spreadsheet template. Sheets named exactly
// "survey" and "choices" mark the structured-survey convention;
// otherwise the first sheet is read as a flat sample-row template.
func InferFields(path string) (*Template, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errutil.UnprocessableEntity("error opening template file", errutil.WithErr(err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if slices.Contains(sheets, "survey") && slices.Contains(sheets, "choices") {
		return inferStructured(f)
	}
	return inferFlat(f, sheets)
}

func inferFlat(f *excelize.File, sheets []string) (*Template, error) {
	if len(sheets) == 0 {
		return nil, errutil.UnprocessableEntity("template has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errutil.UnprocessableEntity("error reading template sheet", errutil.WithErr(err))
	}
	if len(rows) == 0 {
		return nil, errutil.UnprocessableEntity("template sheet has no header row")
	}

	header := rows[0]
	fields := make([]Field, 0, len(header))
	for col, name := range header {
		if name == "" {
			continue
		}
		// Sample value: first non-empty cell among the first 5 data
		// rows, empty string when none.
		sample := ""
		for r := 1; r < len(rows) && r <= 5; r++ {
			if col < len(rows[r]) && rows[r][col] != "" {
				sample = rows[r][col]
				break
			}
		}
		fields = append(fields, Field{Name: name, SampleValue: sample})
	}

	return &Template{Fields: fields, IsStructured: false}, nil
}

func inferStructured(f *excelize.File) (*Template, error) {
	choiceLists, err := readChoiceLists(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows("survey")
	if err != nil {
		return nil, errutil.UnprocessableEntity("error reading survey sheet", errutil.WithErr(err))
	}
	if len(rows) == 0 {
		return nil, errutil.UnprocessableEntity("survey sheet has no header row")
	}

	cols := headerIndex(rows[0])
	var fields []Field
	for _, row := range rows[1:] {
		typ := cell(row, cols, "type")
		name := cell(row, cols, "name")

		if structuralTypes[strings.ToLower(strings.TrimSpace(typ))] {
			continue
		}
		if typ == "" || name == "" {
			continue
		}

		field := Field{Name: name, Type: typ, Label: cell(row, cols, "label")}
		if field.Label == "" {
			field.Label = name
		}

		if strings.Contains(typ, "select") && cell(row, cols, "choice_filter") == "" {
			parts := strings.Fields(typ)
			if len(parts) > 1 {
				if list, ok := choiceLists[parts[len(parts)-1]]; ok {
					field.Choices = list
				}
			}
		}

		fields = append(fields, field)
	}

	return &Template{Fields: fields, IsStructured: true}, nil
}

// readChoiceLists groups the choices sheet by list_name, preserving
// order and duplicates. Rows with a blank list name or value are
// skipped.
func readChoiceLists(f *excelize.File) (map[string][]string, error) {
	rows, err := f.GetRows("choices")
	if err != nil {
		return nil, errutil.UnprocessableEntity("error reading choices sheet", errutil.WithErr(err))
	}
	if len(rows) == 0 {
		return map[string][]string{}, nil
	}

	cols := headerIndex(rows[0])
	lists := map[string][]string{}
	for _, row := range rows[1:] {
		listName := cell(row, cols, "list_name")
		value := cell(row, cols, "name")
		if listName == "" || value == "" {
			continue
		}
		lists[listName] = append(lists[listName], value)
	}
	return lists, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
