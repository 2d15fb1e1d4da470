package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"
)

var ErrTileFailed = errors.New("renderer: tile failed")

// TileFunc renders a single tile and reports what it did
type TileFunc func(tile *Tile) (TileStats, error)

// WorkerPool runs tile tasks on a fixed number of goroutines. The first failing
// task cancels every task that has not started yet.
type WorkerPool struct {
	numWorkers int
}

// DefaultWorkerCount returns three quarters of the logical CPUs, at least one,
// leaving headroom for the host
func DefaultWorkerCount() int {
	logical, err := cpu.Counts(true)
	if err != nil || logical <= 0 {
		logger.Debugf("falling back to runtime CPU count: %v", err)
		logical = runtime.NumCPU()
	}
	return max(1, logical*3/4)
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count selects DefaultWorkerCount.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run executes task for every tile and waits for all of them. Results are
// indexed like tiles. A task error or panic is wrapped in ErrTileFailed and
// returned; the results are discarded in that case.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, task TileFunc) ([]TileStats, error) {
	results := make([]TileStats, len(tiles))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, tile := range tiles {
		if groupCtx.Err() != nil {
			break
		}
		i, tile := i, tile
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			stats, err := runTile(tile, task)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// runTile invokes task and turns a panic into an error
func runTile(tile *Tile, task TileFunc) (stats TileStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: tile %d %v: panic: %v", ErrTileFailed, tile.ID, tile.Bounds, r)
		}
	}()

	start := time.Now()
	stats, err = task(tile)
	if err != nil {
		return TileStats{}, fmt.Errorf("%w: tile %d %v: %w", ErrTileFailed, tile.ID, tile.Bounds, err)
	}
	stats.Duration = time.Since(start)
	return stats, nil
}
