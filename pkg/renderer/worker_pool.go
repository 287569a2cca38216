package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers returns the number of logical CPUs, falling back to the Go runtime's count
func DefaultWorkers() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts <= 0 {
		core.Logger().Debug("cpu count unavailable, using runtime.NumCPU", "error", err)
		return runtime.NumCPU()
	}
	return counts
}

// tileFunc renders one tile; a returned error or panic fails the whole render
type tileFunc func(tile Tile) error

// runTiles starts one goroutine per tile while admitting at most workers tiles
// at a time. A finished tile releases its slot, waking the next waiter. The
// first failure or the cancellation of ctx stops admission of further tiles;
// tiles already running finish. Returns the peak number of tiles in flight.
func runTiles(ctx context.Context, tiles []Tile, workers int, render tileFunc) (int, error) {
	workers = max(1, workers)
	admission := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)

	var inFlight, peak atomic.Int64
	for _, tile := range tiles {
		if err := admission.Acquire(gctx, 1); err != nil {
			break
		}

		g.Go(func() (err error) {
			defer admission.Release(1)

			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}

			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("tile %d %v panicked: %v", tile.ID, tile.Bounds, p)
				}
			}()
			return render(tile)
		})
	}

	if err := g.Wait(); err != nil {
		return int(peak.Load()), err
	}
	// Admission may have stopped because the caller cancelled
	return int(peak.Load()), ctx.Err()
}
