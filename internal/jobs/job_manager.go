package jobs

import (
	"fmt"
	"log/slog"

	"routing/internal/core/application/usecases/queries"
	"routing/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	insightRefreshJob    *InsightRefreshJob
	performanceWarmupJob *PerformanceWarmupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	companiesHandler queries.ListActiveCompaniesQueryHandler,
	insightsHandler queries.GenerateInsightsQueryHandler,
	catalog ports.CarrierCatalog,
	provider ports.PerformanceProvider,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		insightRefreshJob:    NewInsightRefreshJob(companiesHandler, insightsHandler, logger),
		performanceWarmupJob: NewPerformanceWarmupJob(catalog, provider, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.performanceWarmupJob.Start(); err != nil {
		return fmt.Errorf("failed to start performance warmup job: %w", err)
	}

	if err := jm.insightRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.performanceWarmupJob.Stop()
		return fmt.Errorf("failed to start insight refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.insightRefreshJob.Stop()
	jm.performanceWarmupJob.Stop()
}
