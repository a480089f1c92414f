package exporter

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/result"
	"resultctl/pkg/transcript"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(courses []result.CourseResult, bonus *cgpa.Bonus) *transcript.Summary {
	set := result.NewTermResultSet()
	set.Put(result.Term{SemesterID: "241", SemesterName: "Spring", SemesterYear: "2024"}, courses)

	s := &transcript.Summary{
		Student: result.StudentInfo{
			StudentID:      "S1",
			StudentName:    "Alice",
			ProgramName:    "B.Sc. in CSE",
			DepartmentName: "Computer Science and Engineering",
		},
		Terms:       set,
		Bonus:       bonus,
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Recompute()
	return s
}

func scenarioCourses() []result.CourseResult {
	return []result.CourseResult{
		{CourseTitle: "Algorithms", CustomCourseID: "CSE221", GradeLetter: "A", TotalCredit: 3, PointEquivalent: 3.75},
		{CourseTitle: "Compilers", CustomCourseID: "CSE331", GradeLetter: "A+", TotalCredit: 3, PointEquivalent: 4.0},
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	pages, err := RenderPDF(testSummary(scenarioCourses(), nil), &buf, PDFOptions{})
	require.NoError(t, err)

	output := buf.String()
	assert.Equal(t, 1, pages)
	assert.True(t, strings.HasPrefix(output, "%PDF-"), "expected a PDF header")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "CSE221")
	assert.Contains(t, output, "Spring 2024")
	assert.Contains(t, output, "Cumulative GPA: 3.88")
	assert.Contains(t, output, "Page 1/1")
}

func TestRenderPDF_WithDefense(t *testing.T) {
	bonus, _ := cgpa.NewBonus(3.5)

	var buf bytes.Buffer
	_, err := RenderPDF(testSummary(scenarioCourses(), bonus), &buf, PDFOptions{})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Defense: 3.50")
	assert.Contains(t, buf.String(), "Cumulative GPA: 3.69")
}

func TestRenderPDF_UndefinedGPAOmitsSummaryLine(t *testing.T) {
	s := testSummary(nil, nil)

	var buf bytes.Buffer
	_, err := RenderPDF(s, &buf, PDFOptions{})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "Cumulative GPA")
}

func TestRenderPDF_MissingStudentFields(t *testing.T) {
	s := testSummary(scenarioCourses(), nil)
	s.Student = result.StudentInfo{StudentID: "S1"}

	var buf bytes.Buffer
	_, err := RenderPDF(s, &buf, PDFOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Campus:")
}

func TestRenderPDF_Paginates(t *testing.T) {
	var courses []result.CourseResult
	for i := 0; i < 100; i++ {
		courses = append(courses, result.CourseResult{
			CourseTitle:     fmt.Sprintf("Course %03d", i),
			CustomCourseID:  fmt.Sprintf("C%03d", i),
			GradeLetter:     "B",
			TotalCredit:     3,
			PointEquivalent: 3.0,
		})
	}

	var buf bytes.Buffer
	pages, err := RenderPDF(testSummary(courses, nil), &buf, PDFOptions{})
	require.NoError(t, err)

	output := buf.String()
	require.GreaterOrEqual(t, pages, 3)
	assert.Contains(t, output, "Course 099")
	assert.Contains(t, output, fmt.Sprintf("Page %d/%d", pages, pages))
	// Column header is repeated on every page the table continues onto
	assert.GreaterOrEqual(t, strings.Count(output, "(Course Title)"), pages-1)
	assert.Contains(t, output, "Academic Transcript | Alice")
}

func TestRenderPDF_Compressed(t *testing.T) {
	var plain, packed bytes.Buffer
	_, err := RenderPDF(testSummary(scenarioCourses(), nil), &plain, PDFOptions{})
	require.NoError(t, err)
	_, err = RenderPDF(testSummary(scenarioCourses(), nil), &packed, PDFOptions{Compress: true})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(packed.String(), "%PDF-"))
	assert.NotContains(t, packed.String(), "CSE221")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", TitleWidth+10)

	assert.Equal(t, "Short", truncate("Short", TitleWidth))
	assert.Len(t, []rune(truncate(long, TitleWidth)), TitleWidth)
	assert.True(t, strings.HasSuffix(truncate(long, TitleWidth), "..."))
	assert.Equal(t, "Ünï", truncate("Ünïcode", 3))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "221-15-1234_results.pdf", FileName("221-15-1234"))
	assert.Equal(t, "a_b_results.pdf", FileName(" a/b "))
}
