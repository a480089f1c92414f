// Package cgpa computes credit-weighted grade point averages.
package cgpa

import (
	"errors"
	"fmt"
	"math"

	"resultctl/pkg/result"
)

// DefenseCredits is the fixed credit weight of the defense (thesis/project) entry
const DefenseCredits = 6.0

// MaxPoint is the highest grade point on the scale
const MaxPoint = 4.0

var (
	// ErrUndefined is returned when no credits were earned. A GPA of zero is
	// never reported in its place.
	ErrUndefined = errors.New("no credits earned, CGPA cannot be calculated")
	// ErrInvalidBonus is returned for a defense point outside [0, MaxPoint]
	ErrInvalidBonus = errors.New("defense CGPA must be between 0.00 and 4.00")
)

// Bonus is the defense course entered by the user rather than fetched
type Bonus struct {
	PointEquivalent float64
}

// NewBonus validates p and rounds it to the 0.01 step of the input field
func NewBonus(p float64) (*Bonus, error) {
	if math.IsNaN(p) || p < 0 || p > MaxPoint {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBonus, p)
	}
	return &Bonus{PointEquivalent: math.Round(p*100) / 100}, nil
}

// Totals are the running sums of an aggregation
type Totals struct {
	WeightedSum float64
	Credits     float64
}

// Add folds one course into the totals
func (t *Totals) Add(point, credit float64) {
	t.WeightedSum += point * credit
	t.Credits += credit
}

// GPA returns WeightedSum / Credits, or false if there are no credits
func (t Totals) GPA() (float64, bool) {
	if t.Credits <= 0 {
		return 0, false
	}
	return t.WeightedSum / t.Credits, true
}

// Courses sums a list of course results
func Courses(courses []result.CourseResult) Totals {
	var t Totals
	for _, c := range courses {
		t.Add(c.PointEquivalent.Float(), c.TotalCredit.Float())
	}
	return t
}

// Sum adds up every course of every present term, plus the bonus entry if
// one is given. Missing terms contribute nothing.
func Sum(set *result.TermResultSet, bonus *Bonus) Totals {
	var t Totals
	set.Each(func(_ result.Term, courses []result.CourseResult) {
		ct := Courses(courses)
		t.WeightedSum += ct.WeightedSum
		t.Credits += ct.Credits
	})
	if bonus != nil {
		t.Add(bonus.PointEquivalent, DefenseCredits)
	}
	return t
}

// Aggregate computes the cumulative GPA over set and bonus. It returns
// ErrUndefined together with the (zero-credit) totals when nothing counts.
func Aggregate(set *result.TermResultSet, bonus *Bonus) (float64, Totals, error) {
	t := Sum(set, bonus)
	gpa, ok := t.GPA()
	if !ok {
		return 0, t, ErrUndefined
	}
	return gpa, t, nil
}

// TermGPA is the GPA of a single term
func TermGPA(courses []result.CourseResult) (float64, bool) {
	return Courses(courses).GPA()
}

// Format renders a GPA with two decimals
func Format(gpa float64) string {
	return fmt.Sprintf("%.2f", gpa)
}
