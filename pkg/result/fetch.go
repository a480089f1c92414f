package result

import (
	"context"
	"sort"

	"resultctl/pkg/logging"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is enough to fetch a full transcript without queueing
const DefaultWorkers = 32

// FetcherOpts configures a Fetcher
type FetcherOpts struct {
	Workers int
	Logger  log.Logger
}

// Fetcher retrieves per-term results in parallel
type Fetcher struct {
	src     Source
	workers int
	logger  log.Logger
}

// NewFetcher creates a fetcher reading from src
func NewFetcher(src Source, opts FetcherOpts) *Fetcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Fetcher{
		src:     src,
		workers: opts.Workers,
		logger:  log.With(logging.OrNop(opts.Logger), "component", "fetcher"),
	}
}

type termOutcome struct {
	term    Term
	courses []CourseResult
	err     error
}

// Fetch requests the results of every term concurrently. A term that fails or
// has no courses is left out of the set and listed in the report; it never
// stops the other terms from being fetched.
func (f *Fetcher) Fetch(ctx context.Context, studentID string, terms []Term) (*TermResultSet, FetchReport) {
	set := NewTermResultSet()
	var report FetchReport

	unique := make([]Term, 0, len(terms))
	seen := make(map[string]bool)
	for _, t := range terms {
		if !seen[t.SemesterID] {
			seen[t.SemesterID] = true
			unique = append(unique, t)
		}
	}

	outcomes := make(chan termOutcome, len(unique))

	var g errgroup.Group
	g.SetLimit(f.workers)

	go func() {
		for _, t := range unique {
			t := t
			g.Go(func() error {
				courses, err := f.src.FetchTermResult(ctx, studentID, t.SemesterID)
				outcomes <- termOutcome{term: t, courses: courses, err: err}
				// Per-term failures are reported through the channel, not the group
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	for o := range outcomes {
		switch {
		case o.err != nil:
			level.Warn(f.logger).Log("msg", "term fetch failed", "semester", o.term.SemesterID, "err", o.err)
			report.Failed = append(report.Failed, TermFailure{Term: o.term, Err: o.err})
		case len(o.courses) == 0:
			level.Debug(f.logger).Log("msg", "term has no courses", "semester", o.term.SemesterID)
			report.Empty = append(report.Empty, o.term)
		default:
			set.Put(o.term, o.courses)
		}
	}

	// Completion order is random; present everything in term-list order
	set.reorder(unique)
	idx := termIndex(unique)
	sort.SliceStable(report.Failed, func(i, j int) bool {
		return idx[report.Failed[i].Term.SemesterID] < idx[report.Failed[j].Term.SemesterID]
	})
	sort.SliceStable(report.Empty, func(i, j int) bool {
		return idx[report.Empty[i].SemesterID] < idx[report.Empty[j].SemesterID]
	})

	level.Debug(f.logger).Log("msg", "fetched terms", "present", set.Len(), "failed", len(report.Failed), "empty", len(report.Empty))
	return set, report
}

func termIndex(terms []Term) map[string]int {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		idx[t.SemesterID] = i
	}
	return idx
}
