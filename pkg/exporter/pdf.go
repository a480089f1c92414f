package exporter

import (
	"fmt"
	"io"
	"strings"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/result"
	"resultctl/pkg/transcript"

	"github.com/go-pdf/fpdf"
)

const (
	// TitleWidth is the number of characters of a course title that fit in its
	// column. Longer titles are cut, never wrapped.
	TitleWidth = 48

	// PageBottom is the y position (mm) past which no further row is placed on
	// the current page. A4 is 297mm high; the footer lives below this line.
	PageBottom = 270.0

	rowHeight  = 7.0
	marginSide = 15.0
	marginTop  = 15.0
)

// MediaType is the content type of the rendered transcript
const MediaType = "application/pdf"

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Course Title", 78, "L"},
	{"Code", 28, "L"},
	{"Grade", 22, "C"},
	{"Credits", 26, "R"},
	{"Points", 26, "R"},
}

// PDFOptions tweaks the generated document
type PDFOptions struct {
	// Compress deflates page streams. Disabled in tests so text is searchable.
	Compress bool
}

// FileName is the download name of a student's transcript
func FileName(studentID string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(studentID))
	return safe + "_results.pdf"
}

// truncate cuts s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

type pdfWriter struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	summary *transcript.Summary

	// inTable is set while term rows are being written. A break inside a
	// table repeats the column header before the next row.
	inTable       bool
	pendingHeader bool
}

// RenderPDF writes the transcript of summary to w and returns the page count
func RenderPDF(summary *transcript.Summary, w io.Writer, opts PDFOptions) (int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(opts.Compress)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	// Page breaks are decided by checkBreak, not by fpdf
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetTitle("Academic Transcript", true)
	pdf.SetCreator("resultctl", true)
	if !summary.GeneratedAt.IsZero() {
		pdf.SetCreationDate(summary.GeneratedAt)
	}

	pw := &pdfWriter{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		summary: summary,
	}

	pdf.SetHeaderFunc(pw.header)
	pdf.SetFooterFunc(pw.footer)

	pdf.AddPage()
	pw.titleBlock()
	pw.studentBlock()

	summary.Terms.Each(func(term result.Term, courses []result.CourseResult) {
		pw.termSection(term, courses)
	})

	pw.summaryBlock()

	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdf.PageNo(), nil
}

// header repeats on every page after the first
func (pw *pdfWriter) header() {
	if pw.pdf.PageNo() == 1 {
		return
	}
	pw.pdf.SetFont("Helvetica", "I", 8)
	pw.pdf.SetTextColor(110, 110, 110)
	label := fmt.Sprintf("Academic Transcript | %s (%s)", pw.summary.Student.StudentName, pw.summary.Student.StudentID)
	pw.pdf.CellFormat(0, 6, pw.tr(label), "B", 1, "L", false, 0, "")
	pw.pdf.Ln(3)
	pw.pdf.SetTextColor(0, 0, 0)
}

func (pw *pdfWriter) footer() {
	pw.pdf.SetY(-15)
	pw.pdf.SetFont("Helvetica", "I", 8)
	pw.pdf.SetTextColor(110, 110, 110)
	pw.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pw.pdf.PageNo()), "", 0, "C", false, 0, "")
	pw.pdf.SetTextColor(0, 0, 0)
}

// checkBreak starts a new page once the cursor has crossed PageBottom.
// It must run after every placed row.
func (pw *pdfWriter) checkBreak() {
	if pw.pdf.GetY() <= PageBottom {
		return
	}
	pw.pdf.AddPage()
	if pw.inTable {
		pw.pendingHeader = true
	}
}

// ensureSpace breaks early when fewer than h mm are left, so a heading is
// never stranded at the bottom of a page
func (pw *pdfWriter) ensureSpace(h float64) {
	if pw.pdf.GetY()+h > PageBottom {
		pw.pdf.AddPage()
	}
}

func (pw *pdfWriter) titleBlock() {
	pw.pdf.SetFont("Helvetica", "B", 18)
	pw.pdf.CellFormat(0, 10, "Academic Transcript", "", 1, "C", false, 0, "")
	pw.pdf.SetFont("Helvetica", "", 9)
	if !pw.summary.GeneratedAt.IsZero() {
		pw.pdf.CellFormat(0, 5, "Generated "+pw.summary.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	}
	pw.pdf.Ln(6)
}

func (pw *pdfWriter) studentBlock() {
	s := pw.summary.Student
	rows := [][2]string{
		{"Name", s.StudentName},
		{"Student ID", s.StudentID},
		{"Program", s.ProgramName},
		{"Department", s.DepartmentName},
		{"Campus", s.CampusName},
	}

	pw.pdf.SetFont("Helvetica", "B", 12)
	pw.pdf.CellFormat(0, 8, "Student Information", "", 1, "L", false, 0, "")
	for _, row := range rows {
		pw.pdf.SetFont("Helvetica", "B", 10)
		pw.pdf.CellFormat(35, 6, row[0]+":", "", 0, "L", false, 0, "")
		pw.pdf.SetFont("Helvetica", "", 10)
		pw.pdf.CellFormat(0, 6, pw.tr(row[1]), "", 1, "L", false, 0, "")
		pw.checkBreak()
	}
	pw.pdf.Ln(4)
}

func (pw *pdfWriter) tableHeader() {
	pw.pdf.SetFont("Helvetica", "B", 9)
	pw.pdf.SetFillColor(230, 236, 245)
	for i, col := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		pw.pdf.CellFormat(col.width, rowHeight, col.title, "1", ln, col.align, true, 0, "")
	}
	pw.pdf.SetFont("Helvetica", "", 9)
}

func (pw *pdfWriter) termSection(term result.Term, courses []result.CourseResult) {
	// label + column header + first row
	pw.ensureSpace(8 + 2*rowHeight)

	label := term.Label()
	if gpa, ok := cgpa.TermGPA(courses); ok {
		label = fmt.Sprintf("%s  (Term GPA %s)", label, cgpa.Format(gpa))
	}
	pw.pdf.SetFont("Helvetica", "B", 11)
	pw.pdf.CellFormat(0, 8, pw.tr(label), "", 1, "L", false, 0, "")

	pw.tableHeader()
	pw.inTable = true
	for _, c := range courses {
		if pw.pendingHeader {
			pw.tableHeader()
			pw.pendingHeader = false
		}
		cells := []string{
			truncate(c.CourseTitle, TitleWidth),
			c.CustomCourseID,
			c.GradeLetter,
			fmt.Sprintf("%.1f", c.TotalCredit.Float()),
			fmt.Sprintf("%.2f", c.PointEquivalent.Float()),
		}
		for i, col := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}
			pw.pdf.CellFormat(col.width, rowHeight, pw.tr(cells[i]), "1", ln, col.align, false, 0, "")
		}
		pw.checkBreak()
	}
	pw.inTable = false
	pw.pendingHeader = false
	pw.pdf.Ln(4)
}

func (pw *pdfWriter) summaryBlock() {
	pw.ensureSpace(3 * rowHeight)

	if b := pw.summary.Bonus; b != nil {
		pw.pdf.SetFont("Helvetica", "", 10)
		line := fmt.Sprintf("Defense: %s grade points over %.1f credits", cgpa.Format(b.PointEquivalent), cgpa.DefenseCredits)
		pw.pdf.CellFormat(0, rowHeight, line, "", 1, "L", false, 0, "")
		pw.checkBreak()
	}

	gpa, ok := pw.summary.GPA()
	if !ok {
		return
	}
	pw.pdf.SetFont("Helvetica", "B", 12)
	line := fmt.Sprintf("Cumulative GPA: %s  (%.1f credits)", cgpa.Format(gpa), pw.summary.Totals.Credits)
	pw.pdf.CellFormat(0, 9, line, "T", 1, "L", false, 0, "")
	pw.checkBreak()
}
