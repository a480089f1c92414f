package result

import (
	"context"
	"time"
)

// CachedSource memoizes each Source operation for the lifetime of the process.
// Keys are built from the exact call arguments.
type CachedSource struct {
	src Source

	info    *Cache[*StudentInfo]
	terms   *Cache[[]Term]
	results *Cache[[]CourseResult]
}

// NewCachedSource wraps src with one cache per operation
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:     src,
		info:    NewCache[*StudentInfo](ttl),
		terms:   NewCache[[]Term](ttl),
		results: NewCache[[]CourseResult](ttl),
	}
}

func (s *CachedSource) FetchStudentInfo(ctx context.Context, studentID string) (*StudentInfo, error) {
	return s.info.Get(studentID, func() (*StudentInfo, error) {
		return s.src.FetchStudentInfo(ctx, studentID)
	})
}

func (s *CachedSource) FetchTermList(ctx context.Context) ([]Term, error) {
	return s.terms.Get("", func() ([]Term, error) {
		return s.src.FetchTermList(ctx)
	})
}

func (s *CachedSource) FetchTermResult(ctx context.Context, studentID, semesterID string) ([]CourseResult, error) {
	// \x00 cannot appear in either id, so the key is unambiguous
	return s.results.Get(studentID+"\x00"+semesterID, func() ([]CourseResult, error) {
		return s.src.FetchTermResult(ctx, studentID, semesterID)
	})
}

// Purge drops expired entries from every cache
func (s *CachedSource) Purge() {
	s.info.Purge()
	s.terms.Purge()
	s.results.Purge()
}
