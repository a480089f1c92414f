package tui

import (
	"fmt"
	"io"
	"strings"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/result"
	"resultctl/pkg/transcript"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// termTitle normalizes labels like "SPRING 2024" to "Spring 2024"
func termTitle(t result.Term) string {
	return titleCaser.String(strings.ToLower(t.Label()))
}

// PrintReport writes the inline version of a transcript to w
func PrintReport(w io.Writer, s *transcript.Summary) {
	titleStyle := accentStyle.Bold(true).Padding(1, 0, 0, 0)
	labelStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	fmt.Fprintln(w, titleStyle.Render("🎓 Student Information"))
	info := s.Student
	for _, row := range [][2]string{
		{"Name", info.StudentName},
		{"ID", info.StudentID},
		{"Program", info.ProgramName},
		{"Department", info.DepartmentName},
		{"Campus", info.CampusName},
	} {
		fmt.Fprintf(w, "  • %s %s\n", labelStyle.Render(row[0]+":"), row[1])
	}

	fmt.Fprintln(w, titleStyle.Render("📜 Academic Results"))

	if s.Terms.Len() == 0 {
		fmt.Fprintln(w, dimStyle.Render("  No semester results were found."))
	}

	s.Terms.Each(func(term result.Term, courses []result.CourseResult) {
		heading := termTitle(term)
		if gpa, ok := cgpa.TermGPA(courses); ok {
			heading = fmt.Sprintf("%s  %s", heading, dimStyle.Render("Term GPA "+cgpa.Format(gpa)))
		}
		fmt.Fprintf(w, "\n%s\n", labelStyle.Render(heading))
		printCourseTable(w, courses)
	})

	for _, warning := range s.Warnings() {
		fmt.Fprintln(w, warnStyle.Render("⚠ "+warning))
	}
	if len(s.Report.Empty) > 0 {
		var names []string
		for _, t := range s.Report.Empty {
			names = append(names, termTitle(t))
		}
		fmt.Fprintln(w, dimStyle.Render("No results published for: "+strings.Join(names, ", ")))
	}

	fmt.Fprintln(w)
	if b := s.Bonus; b != nil {
		fmt.Fprintf(w, "Defense CGPA: %s (%.1f credits)\n", cgpa.Format(b.PointEquivalent), cgpa.DefenseCredits)
	}

	gpa, ok := s.GPA()
	if !ok {
		fmt.Fprintln(w, warnStyle.Render(cgpa.ErrUndefined.Error()))
		return
	}
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("🎉 Total CGPA Across All Semesters: %s", cgpa.Format(gpa))))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("   over %.1f credits", s.Totals.Credits)))
}

func printCourseTable(w io.Writer, courses []result.CourseResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Course", "Code", "Grade", "Credits", "CGPA"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, c := range courses {
		table.Append([]string{
			c.CourseTitle,
			c.CustomCourseID,
			c.GradeLetter,
			fmt.Sprintf("%.1f", c.TotalCredit.Float()),
			fmt.Sprintf("%.2f", c.PointEquivalent.Float()),
		})
	}

	table.Render()
}
