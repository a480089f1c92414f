package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StudentInfo is the body returned by /result/studentInfo
type StudentInfo struct {
	StudentID      string `json:"studentId"`
	StudentName    string `json:"studentName"`
	ProgramName    string `json:"programName"`
	DepartmentName string `json:"departmentName"`
	CampusName     string `json:"campusName"`
}

// Term represents a semester from /result/semesterList
type Term struct {
	SemesterID   string `json:"semesterId"`
	SemesterName string `json:"semesterName"`
	SemesterYear string `json:"semesterYear"`
}

// Label is the display name of a term, e.g. "Spring 2024"
func (t Term) Label() string {
	return strings.TrimSpace(t.SemesterName + " " + t.SemesterYear)
}

// CourseResult is a single graded course within a term
type CourseResult struct {
	CourseTitle     string `json:"courseTitle"`
	CustomCourseID  string `json:"customCourseId"`
	GradeLetter     string `json:"gradeLetter"`
	TotalCredit     Number `json:"totalCredit"`
	PointEquivalent Number `json:"pointEquivalent"`
}

// Number accepts both JSON numbers and numeric strings ("3.0").
// The result endpoint is not consistent about which one it sends.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid numeric string %q: not a finite number", s)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns the value as a float64
func (n Number) Float() float64 {
	return float64(n)
}

// TermResultSet maps terms to their course results. Only terms with at least one
// course are present; iteration follows the order in which terms were listed
// by the API, not completion order.
type TermResultSet struct {
	order   []Term
	courses map[string][]CourseResult
}

// NewTermResultSet creates an empty set
func NewTermResultSet() *TermResultSet {
	return &TermResultSet{courses: make(map[string][]CourseResult)}
}

// Put records the courses of a term. Empty course lists are ignored, and a term
// that is already present keeps its original position.
func (s *TermResultSet) Put(term Term, courses []CourseResult) {
	if len(courses) == 0 {
		return
	}
	if _, exists := s.courses[term.SemesterID]; !exists {
		s.order = append(s.order, term)
	}
	s.courses[term.SemesterID] = courses
}

// Terms returns the present terms in order
func (s *TermResultSet) Terms() []Term {
	if s == nil {
		return nil
	}
	out := make([]Term, len(s.order))
	copy(out, s.order)
	return out
}

// Courses returns the courses of a term and whether the term is present
func (s *TermResultSet) Courses(semesterID string) ([]CourseResult, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s.courses[semesterID]
	return c, ok
}

// Len is the number of present terms
func (s *TermResultSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Each calls fn for every present term in order
func (s *TermResultSet) Each(fn func(term Term, courses []CourseResult)) {
	if s == nil {
		return
	}
	for _, t := range s.order {
		fn(t, s.courses[t.SemesterID])
	}
}

// reorder sorts the present terms to follow the given term list
func (s *TermResultSet) reorder(terms []Term) {
	ordered := make([]Term, 0, len(s.order))
	seen := make(map[string]bool)
	for _, t := range terms {
		if _, ok := s.courses[t.SemesterID]; ok && !seen[t.SemesterID] {
			seen[t.SemesterID] = true
			ordered = append(ordered, t)
		}
	}
	s.order = ordered
}

// TermFailure records a term whose results could not be retrieved
type TermFailure struct {
	Term Term
	Err  error
}

// FetchReport lists the terms that did not make it into a TermResultSet
type FetchReport struct {
	Failed []TermFailure
	Empty  []Term
}

// Missing returns every term absent from the result set, failed first
func (r FetchReport) Missing() []Term {
	var out []Term
	for _, f := range r.Failed {
		out = append(out, f.Term)
	}
	return append(out, r.Empty...)
}

// OK reports whether every term was fetched successfully
func (r FetchReport) OK() bool {
	return len(r.Failed) == 0
}
