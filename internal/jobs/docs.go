// Package jobs provides scheduled background tasks for the routing system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance of derived data.
//
// # Available Jobs
//
// 1. InsightRefreshJob - Runs hourly to regenerate insights for every company with recent bookings
// 2. PerformanceWarmupJob - Runs every 5 minutes to keep carrier performance snapshots warm in the cache
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(companiesHandler, insightsHandler, catalog, provider, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep going: one company's bad history or one
// cold lane must not stop the remaining work. Failed job starts stop any
// already running jobs.
package jobs
