package jobs

import (
	"context"
	"log/slog"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// performanceWarmupSchedule runs every five minutes, ahead of the snapshot
// cache TTL so routing rarely pays the aggregation cost inline.
const performanceWarmupSchedule = "0 */5 * * * *"

// PerformanceWarmupJob keeps the performance snapshots of every configured
// carrier warm across all zones.
type PerformanceWarmupJob struct {
	catalog  ports.CarrierCatalog
	provider ports.PerformanceProvider
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPerformanceWarmupJob creates a new job for scheduled snapshot warmup.
func NewPerformanceWarmupJob(
	catalog ports.CarrierCatalog,
	provider ports.PerformanceProvider,
	logger *slog.Logger,
) *PerformanceWarmupJob {
	return &PerformanceWarmupJob{
		catalog:  catalog,
		provider: provider,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "performance_warmup_job"),
	}
}

// Start begins the snapshot warmup job.
func (j *PerformanceWarmupJob) Start() error {
	_, err := j.cron.AddFunc(performanceWarmupSchedule, j.warmup)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Performance warmup job started (running every 5 minutes)")
	return nil
}

// Stop stops the snapshot warmup job.
func (j *PerformanceWarmupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Performance warmup job stopped")
}

func (j *PerformanceWarmupJob) warmup() {
	ctx := context.Background()

	profiles, err := j.catalog.All(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Performance warmup job failed to load catalog", "error", err)
		return
	}

	zones := []kernel.Zone{kernel.ZoneLocal, kernel.ZoneZonal, kernel.ZoneMetro, kernel.ZoneRestOfCountry}
	for _, profile := range profiles {
		for _, zone := range zones {
			if _, err = j.provider.Performance(ctx, profile.ID(), zone); err != nil {
				j.logger.ErrorContext(ctx, "Snapshot warmup failed",
					"carrier_id", profile.ID(), "zone", zone, "error", err)
			}
		}
	}
}
