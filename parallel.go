package autopas

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// numWorkers returns the fan-out width for a parallel traversal: one
// goroutine per available core, capped to the number of tasks so small
// workloads don't oversubscribe.
func numWorkers(tasks int) int {
	n := runtime.GOMAXPROCS(0)
	if tasks < n {
		n = tasks
	}
	if n < 1 {
		n = 1
	}
	return n
}

// parallelFor runs fn(i) for i in [0, n) across a fork-join pool of
// goroutines and blocks until every call has returned. It is the one
// concurrency primitive every colored, sliced, and cluster traversal in
// this core dispatches through, built on an errgroup.Group to fan out and
// join concurrent work.
//
// fn must not panic across a cell it does not own; a panic inside fn is
// recovered, turned into an error, and surfaced from the Wait() call so a
// broken functor fails the whole traversal rather than corrupting state
// silently.
func parallelFor(n int, fn func(i int)) error {
	if n == 0 {
		return nil
	}
	workers := numWorkers(n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return nil
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &tasksPanicError{value: r}
				}
			}()
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

// parallelForEach runs fn once per element of a color class / slab
// partition concurrently, joining before returning. Unlike parallelFor it
// takes an explicit index slice, which is how colored traversals (c08,
// c18) dispatch: the same-colored cells are split across parallelFor's
// worker goroutines, all colors processed one color-group at a time so
// that cross-color ordering is preserved while within-color tasks run
// concurrently.
func parallelForEach(indices []int, fn func(idx int)) error {
	return parallelFor(len(indices), func(i int) { fn(indices[i]) })
}

type tasksPanicError struct{ value any }

func (e *tasksPanicError) Error() string {
	return "autopas: task panicked during parallel traversal"
}

func (e *tasksPanicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
