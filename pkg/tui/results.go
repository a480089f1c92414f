package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/exporter"
	"resultctl/pkg/session"
	"resultctl/pkg/transcript"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ParseDefense validates the text of the defense CGPA field
func ParseDefense(s string) (*cgpa.Bonus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("defense CGPA cannot be empty")
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return cgpa.NewBonus(p)
}

// RunResultTUI asks for a student id and optional defense CGPA, then shows
// the report and offers the PDF download
func RunResultTUI(sess *session.Session) error {
	studentID := sess.Config.DefaultStudentID
	var addDefense bool
	var defenseStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Student ID").
				Description("Provide a valid Student ID to fetch results.").
				Value(&studentID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("student ID cannot be empty")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Add Defense CGPA?").
				Value(&addDefense),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Defense CGPA").
				Description("Between 0.00 and 4.00, counted as a 6 credit course.").
				Value(&defenseStr).
				Validate(func(s string) error {
					_, err := ParseDefense(s)
					return err
				}),
		).WithHideFunc(func() bool { return !addDefense }),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	var bonus *cgpa.Bonus
	if addDefense {
		b, err := ParseDefense(defenseStr)
		if err != nil {
			return err
		}
		bonus = b
	}

	studentID = strings.TrimSpace(studentID)
	summary, err := FetchWithSpinner(sess, studentID, bonus)
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return nil
	}

	PrintReport(os.Stdout, summary)

	var download bool
	outputFile := exporter.FileName(studentID)
	if sess.Config.OutputDir != "" {
		outputFile = filepath.Join(sess.Config.OutputDir, outputFile)
	}

	downloadForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Download transcript as PDF?").
				Value(&download),
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := downloadForm.Run(); err != nil {
		return err
	}
	if !download {
		return nil
	}

	if !strings.HasSuffix(outputFile, ".pdf") {
		outputFile += ".pdf"
	}

	pages, err := WritePDF(summary, outputFile)
	if err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Wrote %d page transcript to %s", pages, outputFile)))
	return nil
}

// FetchWithSpinner builds a summary while showing a spinner
func FetchWithSpinner(sess *session.Session, studentID string, bonus *cgpa.Bonus) (*transcript.Summary, error) {
	var summary *transcript.Summary
	var err error

	spinErr := spinner.New().
		Title(fmt.Sprintf("Fetching results for Student ID %s...", studentID)).
		Action(func() {
			summary, err = sess.Builder.Build(context.Background(), studentID, bonus)
		}).
		Run()

	if spinErr != nil {
		return nil, spinErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	return summary, nil
}

// WritePDF renders summary into path, creating parent directories
func WritePDF(summary *transcript.Summary, path string) (int, error) {
	return writeFile(path, func(w io.Writer) (int, error) {
		return exporter.RenderPDF(summary, w, exporter.PDFOptions{Compress: true})
	})
}

// writeFile leaves no partial file behind when render or close fails
func writeFile(path string, render func(io.Writer) (int, error)) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("could not create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	pages, err := render(file)
	if err != nil {
		file.Close()
		os.Remove(path)
		return 0, err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return pages, nil
}
