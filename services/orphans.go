package services

import (
	"context"
	"time"

	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/monitoring"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultGracePeriod keeps objects uploaded moments ago, whose row may not be
// committed yet, out of a sweep.
const DefaultGracePeriod = time.Hour

// MediaReferences lists every file URL stored in content rows. Implemented by
// database.Database.
type MediaReferences interface {
	ReferencedMediaURLs(ctx context.Context) (map[string]struct{}, error)
}

type SweepOptions struct {
	DryRun  bool
	Confirm bool
	// Prefixes overrides the sweeper's managed prefixes when set.
	Prefixes []string
}

type SweepReport struct {
	DryRun   bool     `json:"dry_run"`
	Scanned  int      `json:"scanned"`
	Orphans  []string `json:"orphans"`
	Deleted  []string `json:"deleted"`
	Failed   []string `json:"failed"`
	Retained int      `json:"retained"`
}

// OrphanSweeper removes stored objects that no content row references.
type OrphanSweeper struct {
	refs     MediaReferences
	files    *storage.Files
	prefixes []string
	grace    time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewOrphanSweeper(refs MediaReferences, files *storage.Files, prefixes []string, grace time.Duration) *OrphanSweeper {
	return &OrphanSweeper{
		refs:     refs,
		files:    files,
		prefixes: prefixes,
		grace:    grace,
		now:      time.Now,
		logger:   log.With().Str("service", "orphanSweeper").Logger(),
	}
}

// Sweep lists objects under the managed prefixes and reports those no row
// references. Without DryRun it deletes them, which requires Confirm.
func (s *OrphanSweeper) Sweep(ctx context.Context, opts SweepOptions) (SweepReport, error) {
	if !opts.DryRun && !opts.Confirm {
		return SweepReport{}, errs.NewConfirmRequiredError("Orphan cleanup")
	}

	urls, err := s.refs.ReferencedMediaURLs(ctx)
	if err != nil {
		return SweepReport{}, err
	}
	referenced := make(map[string]struct{}, len(urls))
	for u := range urls {
		if key, ok := s.files.KeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	prefixes := s.prefixes
	if len(opts.Prefixes) > 0 {
		prefixes = opts.Prefixes
	}

	report := SweepReport{DryRun: opts.DryRun, Orphans: []string{}, Deleted: []string{}, Failed: []string{}}
	cutoff := s.now().Add(-s.grace)
	for _, prefix := range prefixes {
		objects, err := s.files.Store().List(ctx, prefix)
		if err != nil {
			return report, err
		}
		for _, obj := range objects {
			report.Scanned++
			if _, ok := referenced[obj.Key]; ok {
				report.Retained++
				continue
			}
			if obj.LastModified.After(cutoff) {
				report.Retained++
				continue
			}
			report.Orphans = append(report.Orphans, obj.Key)
		}
	}

	if opts.DryRun {
		s.logger.Info().Int("scanned", report.Scanned).Int("orphans", len(report.Orphans)).Msg("Orphan sweep dry run")
		return report, nil
	}

	for _, key := range report.Orphans {
		if err := s.files.Store().Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete orphaned object")
			report.Failed = append(report.Failed, key)
			continue
		}
		report.Deleted = append(report.Deleted, key)
	}
	s.logger.Info().Int("scanned", report.Scanned).Int("deleted", len(report.Deleted)).Int("failed", len(report.Failed)).Msg("Orphan sweep finished")
	return report, nil
}

// Run sweeps every interval until ctx is done. With deleteMode false it only
// reports.
func (s *OrphanSweeper) Run(ctx context.Context, interval time.Duration, deleteMode bool) {
	s.logger.Info().Dur("interval", interval).Bool("delete", deleteMode).Msg("Starting orphan sweep daemon")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Orphan sweep daemon stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx, deleteMode)
		}
	}
}

func (s *OrphanSweeper) runOnce(ctx context.Context, deleteMode bool) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("orphan sweep panicked", r)
		}
	}()
	if _, err := s.Sweep(ctx, SweepOptions{DryRun: !deleteMode, Confirm: deleteMode}); err != nil {
		monitoring.Alert("scheduled orphan sweep failed", err)
	}
}
