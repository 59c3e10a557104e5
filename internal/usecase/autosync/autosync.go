// Package autosync runs the vault sync command on a cron schedule. Each
// tick is an independent delegated call; a failed tick is logged and never
// retried within the tick.
package autosync

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// RunFunc performs one sync invocation.
type RunFunc func(ctx context.Context) error

// Service owns the cron schedule for background vault syncs.
type Service struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a Service that invokes run on the given cron schedule.
func New(schedule string, run RunFunc, logger *slog.Logger) (*Service, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		start := time.Now()
		if err := run(context.Background()); err != nil {
			logger.Warn("scheduled sync failed",
				"error", err, "code", domain.ErrorCodeOf(err))
			return
		}
		logger.Info("scheduled sync completed", "duration", time.Since(start))
	})
	if err != nil {
		return nil, domain.NewDomainError("autosync.New", domain.ErrConfigLoad,
			"invalid auto_sync schedule: "+err.Error())
	}
	return &Service{cron: c, logger: logger}, nil
}

// Start begins scheduling. Safe to call once.
func (s *Service) Start() {
	s.cron.Start()
	s.logger.Info("auto sync scheduled")
}

// Stop halts scheduling and waits for a running tick to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
