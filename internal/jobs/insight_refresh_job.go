package jobs

import (
	"context"
	"log/slog"

	"routing/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// insightRefreshSchedule runs at the top of every hour.
const insightRefreshSchedule = "0 0 * * * *"

// InsightRefreshJob periodically regenerates insights for every company that
// booked shipments recently, so the findings are warm when merchants ask for
// them. Insights are derived data; the job never writes anything.
type InsightRefreshJob struct {
	companiesHandler queries.ListActiveCompaniesQueryHandler
	insightsHandler  queries.GenerateInsightsQueryHandler
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewInsightRefreshJob creates a new job for scheduled insight generation.
func NewInsightRefreshJob(
	companiesHandler queries.ListActiveCompaniesQueryHandler,
	insightsHandler queries.GenerateInsightsQueryHandler,
	logger *slog.Logger,
) *InsightRefreshJob {
	return &InsightRefreshJob{
		companiesHandler: companiesHandler,
		insightsHandler:  insightsHandler,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger.With("component", "insight_refresh_job"),
	}
}

// Start begins the hourly insight refresh.
func (j *InsightRefreshJob) Start() error {
	_, err := j.cron.AddFunc(insightRefreshSchedule, j.refresh)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Insight refresh job started (running hourly)")
	return nil
}

// Stop stops the insight refresh job.
func (j *InsightRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Insight refresh job stopped")
}

func (j *InsightRefreshJob) refresh() {
	ctx := context.Background()

	companiesQuery, err := queries.NewListActiveCompaniesQuery(0)
	if err != nil {
		j.logger.ErrorContext(ctx, "Insight refresh job failed to build query", "error", err)
		return
	}

	companies, err := j.companiesHandler.Handle(ctx, companiesQuery)
	if err != nil {
		j.logger.ErrorContext(ctx, "Insight refresh job failed to list companies", "error", err)
		return
	}

	for _, companyID := range companies {
		insightsQuery, queryErr := queries.NewGenerateInsightsQuery(companyID, 0)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Insight refresh job failed to build query",
				"company_id", companyID, "error", queryErr)
			continue
		}

		insights, genErr := j.insightsHandler.Handle(ctx, insightsQuery)
		if genErr != nil {
			// One company's bad history must not starve the rest.
			j.logger.ErrorContext(ctx, "Insight generation failed",
				"company_id", companyID, "error", genErr)
			continue
		}

		if len(insights) == 0 {
			continue
		}
		j.logger.InfoContext(ctx, "Insights refreshed",
			"company_id", companyID,
			"count", len(insights),
			"top_type", insights[0].Type,
			"top_summary", insights[0].Summary)
	}
}
