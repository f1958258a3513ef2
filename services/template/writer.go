package template

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"datasetforge/pkg/errutil"

	"github.com/xuri/excelize/v2"
)

// WriteRows serializes rows in column order of the template fields.
// CSV flattens list values to a bracketed comma-joined form; XLSX
// keeps scalar cells native and joins lists without brackets.
func WriteRows(path string, tpl *Template, rows []Row, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		return writeCSV(path, tpl, rows)
	case "xlsx":
		return writeXLSX(path, tpl, rows)
	default:
		return errutil.ValidationFailed(fmt.Sprintf("unsupported file format: %s", format))
	}
}

func writeCSV(path string, tpl *Template, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errutil.Internal("error saving generated data", errutil.WithErr(err))
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tpl.Names()); err != nil {
		return errutil.Internal("error saving generated data", errutil.WithErr(err))
	}

	for _, row := range rows {
		record := make([]string, 0, len(tpl.Fields))
		for _, field := range tpl.Fields {
			record = append(record, flattenCell(row[field.Name]))
		}
		if err := w.Write(record); err != nil {
			return errutil.Internal("error saving generated data", errutil.WithErr(err))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errutil.Internal("error saving generated data", errutil.WithErr(err))
	}
	return f.Close()
}

// flattenCell renders a list value as [a,b,c]: no quoting of elements
// and no escaping of internal commas inside the brackets.
func flattenCell(v any) string {
	switch list := v.(type) {
	case []string:
		return "[" + strings.Join(list, ",") + "]"
	case []any:
		items := make([]string, len(list))
		for i, item := range list {
			items[i] = fmt.Sprint(item)
		}
		return "[" + strings.Join(items, ",") + "]"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func writeXLSX(path string, tpl *Template, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range tpl.Names() {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errutil.Internal("error saving generated data", errutil.WithErr(err))
		}
		if err := f.SetCellValue(sheet, cellRef, name); err != nil {
			return errutil.Internal("error saving generated data", errutil.WithErr(err))
		}
	}

	for r, row := range rows {
		for col, field := range tpl.Fields {
			cellRef, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return errutil.Internal("error saving generated data", errutil.WithErr(err))
			}
			if err := f.SetCellValue(sheet, cellRef, nativeCell(row[field.Name])); err != nil {
				return errutil.Internal("error saving generated data", errutil.WithErr(err))
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errutil.Internal("error saving generated data", errutil.WithErr(err))
	}
	return nil
}

func nativeCell(v any) any {
	switch list := v.(type) {
	case []string:
		return strings.Join(list, ", ")
	case []any:
		items := make([]string, len(list))
		for i, item := range list {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ", ")
	default:
		return v
	}
}
