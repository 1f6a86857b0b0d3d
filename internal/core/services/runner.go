package services

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/GLADI8R/landscape2/internal/logger"
)

// MaxConcurrency is the hard cap on tasks in flight within one fan-out stage.
const MaxConcurrency = 20

// DefaultConcurrency returns min(logical CPUs, MaxConcurrency).
func DefaultConcurrency() int {
	n := runtime.NumCPU()
	if n > MaxConcurrency {
		n = MaxConcurrency
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Result is the outcome of a single task.
// OK is false when the task failed; Value is then the zero value.
type Result[V any] struct {
	Value V
	OK    bool
}

// TaskFunc is a unit of work identified by key.
type TaskFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

type outcome[K comparable, V any] struct {
	key    K
	result Result[V]
}

// RunBounded runs fn once per distinct key with at most limit tasks in
// flight, and returns one result per distinct key.
//
// A failing or panicking task only affects its own key: the failure is
// logged with the stage, the key and the cause, and the key maps to a
// Result with OK set to false. Completion order is unspecified. A limit
// of zero or less selects DefaultConcurrency.
func RunBounded[K comparable, V any](
	ctx context.Context,
	stage string,
	keys []K,
	limit int,
	fn TaskFunc[K, V],
) map[K]Result[V] {
	if limit <= 0 {
		limit = DefaultConcurrency()
	}

	results := make(map[K]Result[V], len(keys))
	outcomes := make(chan outcome[K, V], limit)

	var g errgroup.Group
	g.SetLimit(limit)

	go func() {
		seen := make(map[K]struct{}, len(keys))
		for _, key := range keys {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			g.Go(func() error {
				value, err := runTask(ctx, key, fn)
				if err != nil {
					logger.WithFields(logger.Fields{
						"stage": stage,
						"key":   fmt.Sprint(key),
					}).Error(err, "%s task failed", stage)
					outcomes <- outcome[K, V]{key: key}
					return nil
				}
				outcomes <- outcome[K, V]{key: key, result: Result[V]{Value: value, OK: true}}
				return nil
			})
		}
		_ = g.Wait() // tasks never return errors
		close(outcomes)
	}()

	// Single consumer: the result map has exactly one writer.
	for o := range outcomes {
		results[o.key] = o.result
	}

	logger.Debug("%s: %d tasks completed", stage, len(results))
	return results
}

// runTask calls fn, converting a panic into an error.
func runTask[K comparable, V any](ctx context.Context, key K, fn TaskFunc[K, V]) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx, key)
}

// Succeeded counts the successful results.
func Succeeded[K comparable, V any](results map[K]Result[V]) int {
	n := 0
	for _, r := range results {
		if r.OK {
			n++
		}
	}
	return n
}
