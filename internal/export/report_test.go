package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/cv-builder/internal/types"
)

func sampleReport() Report {
	return Report{
		VersionName: "Backend",
		JobTitle:    "Senior Go Engineer",
		Generated:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Result: &types.MatchResponse{
			Analysis: &types.JDAnalysis{
				Keywords: types.JDKeywords{
					Skills:           []string{"Go", "Kubernetes"},
					Tools:            []string{"Terraform"},
					Responsibilities: []string{"Own the payments API"},
				},
				Gaps:        []string{"Kubernetes"},
				MatchScore:  72,
				Suggestions: "Mention container orchestration.",
			},
			Summary: "Backend engineer with eight years of Go.",
		},
		Found: []string{"Go"},
	}
}

func TestWriteMatchReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatchReport(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{summarySheet, keywordsSheet}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "CV Match Report", cell(summarySheet, "A1"))
	assert.Equal(t, "Backend", cell(summarySheet, "B3"))
	assert.Equal(t, "Senior Go Engineer", cell(summarySheet, "B4"))
	assert.Equal(t, "2024-03-01 09:30", cell(summarySheet, "B5"))
	assert.Equal(t, "72%", cell(summarySheet, "B6"))
	assert.Equal(t, "Backend engineer with eight years of Go.", cell(summarySheet, "B7"))
	assert.Equal(t, "Kubernetes", cell(summarySheet, "B9"))

	assert.Equal(t, "Keyword", cell(keywordsSheet, "B1"))
	assert.Equal(t, "Go", cell(keywordsSheet, "B2"))
	assert.Equal(t, "yes", cell(keywordsSheet, "C2"))
	assert.Equal(t, "Kubernetes", cell(keywordsSheet, "B3"))
	assert.Equal(t, "no", cell(keywordsSheet, "C3"))
	assert.Equal(t, "Tools", cell(keywordsSheet, "A4"))
	assert.Equal(t, "Responsibilities", cell(keywordsSheet, "A5"))
	assert.Equal(t, "", cell(keywordsSheet, "C5"))
}

func TestMatchReport_AddsExtension(t *testing.T) {
	path, err := MatchReport(sampleReport(), filepath.Join(t.TempDir(), "match"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "72%", v)
}

func TestMatchReport_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMatchReport(&buf, Report{})
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "xlsx", exportErr.Format)
	assert.Zero(t, buf.Len())
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "Backend_Roles_Match.xlsx", ReportFilename("Backend Roles"))
	assert.Equal(t, "Professional_CV_Match.xlsx", ReportFilename(""))
	assert.Equal(t, "ab_Match.xlsx", ReportFilename("a/b"))
}
