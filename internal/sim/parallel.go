package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sourcespace/internal/config"
)

// Ensemble runs the same configuration under consecutive seeds.
type Ensemble struct {
	cfg       *config.Config
	logger    *log.Logger
	numRuns   int
	seedStart uint64
}

// NewEnsemble seeds run i with seedStart+i. A zero seedStart starts at 1
// so every run stays reproducible.
func NewEnsemble(cfg *config.Config, logger *log.Logger, numRuns int, seedStart uint64) *Ensemble {
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{cfg: cfg, logger: logger, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, opts Options) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)

			results[idx], errs[idx] = New(&cfgCopy, e.logger).Run(ctx, opts)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
