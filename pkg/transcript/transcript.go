package transcript

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/logging"
	"resultctl/pkg/result"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	// ErrStudentInfoUnavailable halts a build when the student profile is absent
	ErrStudentInfoUnavailable = errors.New("student information could not be retrieved")
	// ErrTermListUnavailable halts a build when the semester list is absent
	ErrTermListUnavailable = errors.New("semester list could not be retrieved")
)

// Summary is everything needed to display or render a transcript
type Summary struct {
	Student     result.StudentInfo
	Terms       *result.TermResultSet
	Report      result.FetchReport
	Bonus       *cgpa.Bonus
	Totals      cgpa.Totals
	GeneratedAt time.Time

	gpa     float64
	defined bool
}

// GPA returns the cumulative GPA and whether it could be calculated
func (s *Summary) GPA() (float64, bool) {
	return s.gpa, s.defined
}

// Recompute refreshes the totals after Terms or Bonus changed
func (s *Summary) Recompute() {
	gpa, totals, err := cgpa.Aggregate(s.Terms, s.Bonus)
	s.Totals = totals
	s.gpa = gpa
	s.defined = err == nil
}

// Builder assembles summaries from a result source
type Builder struct {
	src     result.Source
	fetcher *result.Fetcher
	logger  log.Logger
	now     func() time.Time
}

// BuilderOpts configures a Builder
type BuilderOpts struct {
	Workers int
	Logger  log.Logger
}

// NewBuilder creates a builder over src. src is usually a *result.CachedSource.
func NewBuilder(src result.Source, opts BuilderOpts) *Builder {
	logger := logging.OrNop(opts.Logger)
	return &Builder{
		src:     src,
		fetcher: result.NewFetcher(src, result.FetcherOpts{Workers: opts.Workers, Logger: logger}),
		logger:  log.With(logger, "component", "transcript"),
		now:     time.Now,
	}
}

// Build fetches everything about a student and aggregates the cumulative GPA.
// Missing student info or semester list is fatal; individual term failures
// are recorded in Summary.Report.
func (b *Builder) Build(ctx context.Context, studentID string, bonus *cgpa.Bonus) (*Summary, error) {
	var summary *Summary

	err := logging.TimeFunction(b.logger, fmt.Sprintf("transcript build for %s", studentID), func() error {
		info, err := b.src.FetchStudentInfo(ctx, studentID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStudentInfoUnavailable, err)
		}

		terms, err := b.src.FetchTermList(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTermListUnavailable, err)
		}
		level.Debug(b.logger).Log("msg", "semester list fetched", "count", len(terms))

		set, report := b.fetcher.Fetch(ctx, studentID, terms)

		summary = &Summary{
			Student:     *info,
			Terms:       set,
			Report:      report,
			Bonus:       bonus,
			GeneratedAt: b.now(),
		}
		summary.Recompute()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// Warnings lists human readable notes about data that could not be retrieved
func (s *Summary) Warnings() []string {
	var out []string
	for _, f := range s.Report.Failed {
		out = append(out, fmt.Sprintf("Could not retrieve results for %s: %v", f.Term.Label(), f.Err))
	}
	return out
}
