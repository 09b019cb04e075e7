package testutil

import (
	"errors"
	"sync"

	"hrcore/pkg/platform/sentinel"
)

// ConcurrentResult counts the outcomes of RunConcurrent by sentinel category.
type ConcurrentResult struct {
	Successes int
	Conflicts int
	NotFounds int
	// Unexpected holds every error that matched no sentinel.
	Unexpected []error
}

func (r *ConcurrentResult) Total() int {
	return r.Successes + r.Conflicts + r.NotFounds + len(r.Unexpected)
}

func (r *ConcurrentResult) record(err error) {
	switch {
	case err == nil:
		r.Successes++
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		r.Conflicts++
	case errors.Is(err, sentinel.ErrNotFound):
		r.NotFounds++
	default:
		r.Unexpected = append(r.Unexpected, err)
	}
}

// RunConcurrent calls fn from n goroutines released at the same moment and
// classifies what they return.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		start  = make(chan struct{})
		result = &ConcurrentResult{}
	)
	for i := range n {
		wg.Go(func() {
			<-start
			err := fn(i)
			mu.Lock()
			result.record(err)
			mu.Unlock()
		})
	}
	close(start)
	wg.Wait()
	return result
}
