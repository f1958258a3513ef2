package template

// Field describes one column of a spreadsheet template. Structured
// survey templates carry Type/Label/Choices; flat templates carry the
// sample value taken from the first data rows.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Label       string   `json:"label,omitempty"`
	SampleValue string   `json:"sample_value,omitempty"`
	Choices     []string `json:"choices,omitempty"`
}

// Template is the inferred shape of an uploaded spreadsheet.
type Template struct {
	Fields       []Field
	IsStructured bool
}

// Names returns the field names in declaration order.
func (t *Template) Names() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Row maps field names to a scalar or list-of-scalars value. Every row
// populates every field of its template.
type Row map[string]any

// Result is the payload stored on a completed template-pipeline task.
type Result struct {
	OutputFile string `json:"output_file"`
	RowCount   int    `json:"row_count"`
	Format     string `json:"format"`
}
