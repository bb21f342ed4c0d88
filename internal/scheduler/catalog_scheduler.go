package scheduler

import (
	"context"
	"fmt"

	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogRefresher reloads the cached catalog snapshot
type CatalogRefresher interface {
	Refresh() error
}

// CatalogScheduler reloads the catalog snapshot on a cron schedule so
// products written outside the admin API show up without a restart.
type CatalogScheduler struct {
	cron      *cron.Cron
	spec      string
	refresher CatalogRefresher
}

// NewCatalogScheduler takes a robfig/cron spec such as "@every 5m" or
// "*/10 * * * *".
func NewCatalogScheduler(spec string, refresher CatalogRefresher) *CatalogScheduler {
	return &CatalogScheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:      spec,
		refresher: refresher,
	}
}

func (s *CatalogScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		logger.Error("Failed to add catalog refresh job", err, map[string]interface{}{
			"spec": s.spec,
		})
		return fmt.Errorf("invalid catalog refresh schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce refreshes the snapshot now. Failures keep the previous snapshot.
func (s *CatalogScheduler) RunOnce() {
	if err := s.refresher.Refresh(); err != nil {
		logger.Error("Scheduled catalog refresh failed", err)
		return
	}
	logger.Debug("Scheduled catalog refresh done")
}

// Stop waits for a running refresh to finish or ctx to expire.
func (s *CatalogScheduler) Stop(ctx context.Context) {
	logger.Info("Stopping catalog scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Catalog scheduler did not stop in time")
	}
}
