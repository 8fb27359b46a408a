// Package batch diffs many file pairs in parallel.
//
// Each pair is an independent engine invocation, so pairs run concurrently
// with no shared state beyond the result slice.
package batch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/linediff"
)

// Pair names the two files of one comparison.
type Pair struct {
	Original string `json:"original" yaml:"original"`
	Modified string `json:"modified" yaml:"modified"`
}

// Result is the outcome of diffing one pair.
type Result struct {
	Pair
	Stats linediff.Stats `json:"stats"`
	Error string         `json:"error,omitempty"`
}

// Changed reports whether the pair differs.
func (r Result) Changed() bool {
	return r.Error == "" && !r.Stats.NoChanges()
}

// Options configures Run.
type Options struct {
	Loader      *input.Loader
	Concurrency int          // < 1 runs pairs one at a time
	OnResult    func(Result) // called from worker goroutines as pairs finish
}

// Run diffs every pair and returns results in input order. A pair that
// fails to load is reported in its Result and does not stop the others. The
// returned error is non-nil only when ctx ends first.
func Run(ctx context.Context, pairs []Pair, opts Options) ([]Result, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("batch: no loader configured")
	}

	results := make([]Result, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := diffPair(opts.Loader, p)
			results[i] = r
			if opts.OnResult != nil {
				opts.OnResult(r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func diffPair(l *input.Loader, p Pair) Result {
	r := Result{Pair: p}

	original, err := l.LoadOptional(p.Original)
	if err != nil {
		r.Error = err.Error()
		logrus.Debugf("batch: %s: %v", p.Original, err)
		return r
	}
	modified, err := l.LoadOptional(p.Modified)
	if err != nil {
		r.Error = err.Error()
		logrus.Debugf("batch: %s: %v", p.Modified, err)
		return r
	}

	r.Stats = linediff.Count(linediff.Diff(original.Content, modified.Content))
	logrus.Debugf("batch: %s -> %s: %s", p.Original, p.Modified, r.Stats)
	return r
}
