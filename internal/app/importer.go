package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_admin/internal/wizard"
)

type ImportResult struct {
	Path   string
	Result wizard.Result
	Err    error
}

// Importer registers many draft files, each through its own wizard.
type Importer struct {
	refs    *ReferenceService
	reg     *RegistrationService
	workers int
	load    func(string) (DraftFile, error)
}

func NewImporter(refs *ReferenceService, reg *RegistrationService, workers int) *Importer {
	if workers <= 0 {
		workers = 1
	}
	return &Importer{refs: refs, reg: reg, workers: workers, load: LoadDraftFile}
}

// Run loads reference data once, then submits up to workers drafts at a
// time. Results are returned in input order.
func (im *Importer) Run(ctx context.Context, paths []string) ([]ImportResult, error) {
	refs, err := im.refs.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ImportResult, len(paths))
	sem := semaphore.NewWeighted(int64(im.workers))
	var wg sync.WaitGroup

	for i, p := range paths {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(paths); j++ {
				out[j] = ImportResult{Path: paths[j], Err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.Release(1)

			r := ImportResult{Path: path}
			d, err := im.load(path)
			if err == nil {
				r.Result, err = im.reg.RegisterDraft(ctx, refs, d)
			}
			r.Err = err
			out[i] = r

			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("path", path).Str("hotel_id", r.Result.Hotel.ID).Msg("import ok")
		}(i, p)
	}

	wg.Wait()
	return out, nil
}
