package template

import (
	"os"
	"path/filepath"
	"testing"

	"datasetforge/pkg/errutil"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func writeFlatTemplate(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeSurveyTemplate(t *testing.T, survey, choices [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "survey"))
	_, err := f.NewSheet("choices")
	require.NoError(t, err)

	for i, row := range survey {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("survey", cellRef, &row))
	}
	for i, row := range choices {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("choices", cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInferFieldsFlat(t *testing.T) {
	path := writeFlatTemplate(t, [][]interface{}{
		{"name", "email", "age"},
		{"John Smith", "", "34"},
		{"Jane Doe", "jane@example.com", "28"},
	})

	tpl, err := InferFields(path)
	require.NoError(t, err)
	require.False(t, tpl.IsStructured)
	require.Equal(t, []Field{
		{Name: "name", SampleValue: "John Smith"},
		{Name: "email", SampleValue: "jane@example.com"},
		{Name: "age", SampleValue: "34"},
	}, tpl.Fields)
	require.Equal(t, []string{"name", "email", "age"}, tpl.Names())
}

func TestInferFieldsFlatHeaderOnly(t *testing.T) {
	path := writeFlatTemplate(t, [][]interface{}{
		{"product", "price"},
	})

	tpl, err := InferFields(path)
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Name: "product"},
		{Name: "price"},
	}, tpl.Fields)
}

func TestInferFieldsStructuredSurvey(t *testing.T) {
	path := writeSurveyTemplate(t,
		[][]interface{}{
			{"type", "name", "label", "choice_filter"},
			{"begin_group", "demographics", "Demographics", ""},
			{"text", "respondent_name", "Your name", ""},
			{"select_one gender", "gender", "Gender", ""},
			{"select_multiple language", "languages", "", ""},
			{"select_one region", "region", "Region", "country=${country}"},
			{"note", "intro", "Welcome", ""},
			{"end_group", "demographics", "", ""},
			{"integer", "age", "Your age", ""},
		},
		[][]interface{}{
			{"list_name", "name", "label"},
			{"gender", "male", "Male"},
			{"gender", "female", "Female"},
			{"language", "en", "English"},
			{"language", "it", "Italian"},
			{"region", "north", "North"},
		},
	)

	tpl, err := InferFields(path)
	require.NoError(t, err)
	require.True(t, tpl.IsStructured)
	require.Equal(t, []Field{
		{Name: "respondent_name", Type: "text", Label: "Your name"},
		{Name: "gender", Type: "select_one gender", Label: "Gender", Choices: []string{"male", "female"}},
		// Missing label falls back to the field name.
		{Name: "languages", Type: "select_multiple language", Label: "languages", Choices: []string{"en", "it"}},
		// A choice_filter means the list depends on another answer, so
		// no static choices are attached.
		{Name: "region", Type: "select_one region", Label: "Region"},
		{Name: "age", Type: "integer", Label: "Your age"},
	}, tpl.Fields)
}

func TestInferFieldsStructuredEmptyChoicesSheet(t *testing.T) {
	path := writeSurveyTemplate(t,
		[][]interface{}{
			{"type", "name", "label"},
			{"text", "comment", "Comment"},
		},
		nil,
	)

	tpl, err := InferFields(path)
	require.NoError(t, err)
	require.Equal(t, []Field{{Name: "comment", Type: "text", Label: "Comment"}}, tpl.Fields)
}

func TestInferFieldsNotASpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

	_, err := InferFields(path)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)
}
