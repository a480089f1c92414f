package cgpa

import (
	"math/rand"
	"testing"

	"resultctl/pkg/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func course(point, credit float64) result.CourseResult {
	return result.CourseResult{
		PointEquivalent: result.Number(point),
		TotalCredit:     result.Number(credit),
	}
}

func singleTerm(courses ...result.CourseResult) *result.TermResultSet {
	set := result.NewTermResultSet()
	set.Put(result.Term{SemesterID: "241", SemesterName: "Spring", SemesterYear: "2024"}, courses)
	return set
}

func TestAggregate_SingleTerm(t *testing.T) {
	set := singleTerm(course(3.75, 3.0), course(4.0, 3.0))

	gpa, totals, err := Aggregate(set, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.875, gpa, 1e-9)
	assert.InDelta(t, 23.25, totals.WeightedSum, 1e-9)
	assert.InDelta(t, 6.0, totals.Credits, 1e-9)
}

func TestAggregate_WithDefense(t *testing.T) {
	set := singleTerm(course(3.75, 3.0), course(4.0, 3.0))
	bonus, err := NewBonus(3.5)
	require.NoError(t, err)

	gpa, totals, err := Aggregate(set, bonus)
	require.NoError(t, err)
	assert.InDelta(t, 3.6875, gpa, 1e-9)
	assert.InDelta(t, 44.25, totals.WeightedSum, 1e-9)
	assert.InDelta(t, 12.0, totals.Credits, 1e-9)
}

func TestAggregate_EmptyIsUndefined(t *testing.T) {
	gpa, totals, err := Aggregate(result.NewTermResultSet(), nil)

	assert.ErrorIs(t, err, ErrUndefined)
	assert.Zero(t, gpa)
	assert.Zero(t, totals.Credits)
}

func TestAggregate_NilSetIsUndefined(t *testing.T) {
	_, _, err := Aggregate(nil, nil)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestAggregate_ZeroCreditCoursesAreUndefined(t *testing.T) {
	set := singleTerm(course(4.0, 0))

	_, _, err := Aggregate(set, nil)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestAggregate_DefenseOnly(t *testing.T) {
	bonus, _ := NewBonus(3.25)

	gpa, _, err := Aggregate(result.NewTermResultSet(), bonus)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, gpa, 1e-9)
}

func TestAggregate_ZeroDefenseStillCounts(t *testing.T) {
	set := singleTerm(course(4.0, 6.0))
	bonus, err := NewBonus(0)
	require.NoError(t, err)

	gpa, _, err := Aggregate(set, bonus)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, gpa, 1e-9)
}

func TestSum_BonusDelta(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		n := r.Intn(8)
		var courses []result.CourseResult
		for j := 0; j < n; j++ {
			courses = append(courses, course(float64(r.Intn(17))*0.25, float64(1+r.Intn(4))))
		}
		set := singleTerm(courses...)
		p := float64(r.Intn(401)) / 100

		without := Sum(set, nil)
		with := Sum(set, &Bonus{PointEquivalent: p})

		assert.InDelta(t, 6.0*p, with.WeightedSum-without.WeightedSum, 1e-9)
		assert.InDelta(t, 6.0, with.Credits-without.Credits, 1e-9)
	}
}

func TestAggregate_MatchesIndependentComputation(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		set := result.NewTermResultSet()
		var num, den float64
		terms := 1 + r.Intn(10)
		for term := 0; term < terms; term++ {
			n := 1 + r.Intn(7)
			var courses []result.CourseResult
			for j := 0; j < n; j++ {
				p := float64(r.Intn(17)) * 0.25
				c := float64(1 + r.Intn(4))
				num += p * c
				den += c
				courses = append(courses, course(p, c))
			}
			set.Put(result.Term{SemesterID: string(rune('A' + term))}, courses)
		}

		gpa, _, err := Aggregate(set, nil)
		require.NoError(t, err)
		assert.InDelta(t, num/den, gpa, 0.01)
	}
}

func TestNewBonus(t *testing.T) {
	b, err := NewBonus(3.456)
	require.NoError(t, err)
	assert.Equal(t, 3.46, b.PointEquivalent)

	_, err = NewBonus(4.01)
	assert.ErrorIs(t, err, ErrInvalidBonus)
	_, err = NewBonus(-0.5)
	assert.ErrorIs(t, err, ErrInvalidBonus)
}

func TestTermGPA(t *testing.T) {
	gpa, ok := TermGPA([]result.CourseResult{course(3.0, 3.0), course(4.0, 1.0)})
	assert.True(t, ok)
	assert.InDelta(t, 3.25, gpa, 1e-9)

	_, ok = TermGPA(nil)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3.88", Format(3.875))
	assert.Equal(t, "3.69", Format(3.6875))
}
