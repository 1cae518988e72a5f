package cmd

import (
	"log/slog"

	"parceldelivery/internal/adapters/out/postgres"
	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/jobs"
	"parceldelivery/internal/metrics"

	httpin "parceldelivery/internal/adapters/in/http"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	gateway    ports.PaymentGateway
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	gateway ports.PaymentGateway,
	publisher ports.TrackingEventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		gateway:    gateway,
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) parcelUoW() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) riderUoW() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoW())
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	return commands.NewStartCheckoutCommandHandler(c.parcelUoW(), c.gateway)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(c.uow(), c.gateway)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	return commands.NewCreateRiderCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateReviewRiderCommandHandler() commands.ReviewRiderCommandHandler {
	return commands.NewReviewRiderCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingEventsQueryHandler() queries.GetTrackingEventsQueryHandler {
	return queries.NewGetTrackingEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentHistoryQueryHandler() queries.GetPaymentHistoryQueryHandler {
	return queries.NewGetPaymentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableRidersQueryHandler() queries.GetAvailableRidersQueryHandler {
	return queries.NewGetAvailableRidersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the echo adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		StartCheckout:        c.CreateStartCheckoutCommandHandler(),
		ReconcilePayment:     c.CreateReconcilePaymentCommandHandler(),
		AssignRider:          c.CreateAssignRiderCommandHandler(),
		CompleteDelivery:     c.CreateCompleteDeliveryCommandHandler(),
		UpdateDeliveryStatus: c.CreateUpdateDeliveryStatusCommandHandler(),
		CreateRider:          c.CreateCreateRiderCommandHandler(),
		ReviewRider:          c.CreateReviewRiderCommandHandler(),
		GetParcel:            c.CreateGetParcelQueryHandler(),
		GetTrackingEvents:    c.CreateGetTrackingEventsQueryHandler(),
		GetPaymentHistory:    c.CreateGetPaymentHistoryQueryHandler(),
		GetAvailableRiders:   c.CreateGetAvailableRidersQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewPaymentSweepJob(
		c.uowFactory.CreateGorm().ParcelRepository(),
		c.CreateReconcilePaymentCommandHandler(),
		c.metrics,
		c.cfg.PaymentSweepSchedule,
		jobs.DefaultSweepBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(sweep)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
