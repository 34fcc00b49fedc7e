package cmd

import (
	"log/slog"

	"routing/internal/adapters/out/carrierconfig"
	"routing/internal/adapters/out/perfcache"
	"routing/internal/adapters/out/postgres"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"
	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
	"routing/internal/jobs"
	"routing/internal/pkg/optimistic"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *carrierconfig.StaticCatalog
	provider   ports.PerformanceProvider
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	catalog *carrierconfig.StaticCatalog,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	// Snapshot reads run outside any transaction, on the main connection.
	shipmentReader := uowFactory.Create().ShipmentRepository()
	provider := perfcache.NewCache(
		perfcache.NewAggregatingProvider(shipmentReader, 0, nil), 0, nil)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		catalog:    catalog,
		provider:   provider,
		logger:     logger,
	}
}

// PerformanceProvider exposes the shared TTL-cached snapshot provider.
func (c *CompositionRoot) PerformanceProvider() ports.PerformanceProvider {
	return c.provider
}

// CarrierCatalog exposes the static carrier configuration.
func (c *CompositionRoot) CarrierCatalog() ports.CarrierCatalog {
	return c.catalog
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f, optimistic.DefaultPolicy(), nil)
}

func (c *CompositionRoot) CreateRouteOrderCommandHandler() commands.RouteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRouteOrderCommandHandler(
		f,
		c.catalog,
		c.provider,
		services.NewCarrierSelector(services.DefaultSelectorConfig()),
		optimistic.DefaultPolicy(),
		nil,
	)
}

func (c *CompositionRoot) CreateGetCarrierPerformanceQueryHandler() queries.GetCarrierPerformanceQueryHandler {
	return queries.NewGetCarrierPerformanceQueryHandler(c.gormDB, nil)
}

func (c *CompositionRoot) CreateGenerateInsightsQueryHandler() queries.GenerateInsightsQueryHandler {
	return queries.NewGenerateInsightsQueryHandler(
		c.uowFactory.Create().ShipmentRepository(),
		c.catalog,
		services.NewInsightGenerator(c.logger, services.DefaultAnalyzers()...),
		services.DefaultInsightPolicy(),
		nil,
	)
}

func (c *CompositionRoot) CreateListActiveCompaniesQueryHandler() queries.ListActiveCompaniesQueryHandler {
	return queries.NewListActiveCompaniesQueryHandler(c.gormDB, nil)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListActiveCompaniesQueryHandler(),
		c.CreateGenerateInsightsQueryHandler(),
		c.catalog,
		c.provider,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// DefaultCarrierProfiles is the built-in carrier configuration. Rate tables
// and service levels are static data; a deployment overrides them by passing
// its own profiles to NewStaticCatalog.
func DefaultCarrierProfiles() ([]*carrier.Profile, error) {
	allZones := func(local, zonal, metro, rest int) []carrier.ServiceLevel {
		return []carrier.ServiceLevel{
			{Zone: kernel.ZoneLocal, StandardDays: local, ExpressDays: max(1, local-1)},
			{Zone: kernel.ZoneZonal, StandardDays: zonal, ExpressDays: max(1, zonal-1)},
			{Zone: kernel.ZoneMetro, StandardDays: metro, ExpressDays: max(1, metro-1)},
			{Zone: kernel.ZoneRestOfCountry, StandardDays: rest, ExpressDays: max(1, rest-2)},
		}
	}

	type carrierSpec struct {
		id     string
		name   string
		rates  [6]float64 // base, perHalfKg, expressMult, metroDiscountPct, codPct, minCODFee
		levels []carrier.ServiceLevel
	}

	specs := []carrierSpec{
		{
			id:     "5f6bbd20-5c72-4f0e-8a53-7aa6fba43f01",
			name:   "BlueDart Surface",
			rates:  [6]float64{40, 8, 1.5, 0.10, 0.02, 20},
			levels: allZones(2, 3, 3, 5),
		},
		{
			id:     "8b0a2f35-2e0b-4f33-9c56-3f3cbe5ca902",
			name:   "Delhivery Standard",
			rates:  [6]float64{35, 10, 1.4, 0.05, 0.025, 25},
			levels: allZones(2, 4, 3, 6),
		},
		{
			id:     "c4df9e2a-90cf-4ad4-8d8e-61a1cf1d7b03",
			name:   "Ekart Economy",
			rates:  [6]float64{30, 12, 1.6, 0, 0.03, 30},
			levels: allZones(3, 4, 4, 7),
		},
	}

	profiles := make([]*carrier.Profile, 0, len(specs))
	for _, spec := range specs {
		id, err := kernel.UUIDFromString(spec.id)
		if err != nil {
			return nil, err
		}
		rateTable, err := carrier.NewRateTable(
			spec.rates[0], spec.rates[1], spec.rates[2], spec.rates[3], spec.rates[4], spec.rates[5])
		if err != nil {
			return nil, err
		}
		profile, err := carrier.NewProfile(id, spec.name, rateTable, spec.levels)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}
