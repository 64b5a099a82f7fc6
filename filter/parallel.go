package filter

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"
)

// Rows are handed to workers in batches of this size.
const batchSize = 1024

// ParallelFilterRows is FilterRows spread over a pool of workers. The
// result keeps the input order. A panic in an accessor or comparer
// is returned as an error and no partial result is returned.
func (self *Engine) ParallelFilterRows(ctx context.Context,
	rows []types.Row, filters []types.Filter, columns []types.Column,
	workers int) ([]types.Row, error) {
	p := self.prepare(filters, columns)
	matched := make([]bool, len(rows))

	if workers <= 1 || len(rows) <= batchSize {
		err := self.evaluateBatch(p, rows, matched, 0, len(rows))
		if err != nil {
			return nil, err
		}
		return collect(rows, matched), nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "ParallelFilterRows")
	}
	defer pool.Release()

	var mu sync.Mutex
	var worker_err error

	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += batchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		start, end := start, end
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			err := self.evaluateBatch(p, rows, matched, start, end)
			if err != nil {
				mu.Lock()
				if worker_err == nil {
					worker_err = err
				}
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.Wrap(err, "ParallelFilterRows")
		}
	}
	wg.Wait()

	if worker_err != nil {
		return nil, worker_err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return collect(rows, matched), nil
}

// Evaluate rows[start:end] into matched. Panics raised by column
// accessors or comparers become errors.
func (self *Engine) evaluateBatch(p plan, rows []types.Row,
	matched []bool, start, end int) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			self.env.Log("filter: panic evaluating rows %v-%v: %v",
				start, end, r)
			err = errors.Errorf("ParallelFilterRows: panic: %v", r)
		}
	}()

	for i := start; i < end; i++ {
		matched[i] = self.evaluate(p, rows[i])
	}
	return nil
}

func collect(rows []types.Row, matched []bool) []types.Row {
	result := make([]types.Row, 0, len(rows))
	for i, row := range rows {
		if matched[i] {
			result = append(result, row)
		}
	}
	return result
}
