package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "trackorder/internal/adapters/in/http"
	"trackorder/internal/adapters/out/commerce"
	"trackorder/internal/adapters/out/postgres"
	"trackorder/internal/adapters/out/s3"
	"trackorder/internal/core/application/eventhandlers"
	"trackorder/internal/core/application/events"
	"trackorder/internal/core/application/usecases/commands"
	"trackorder/internal/core/application/usecases/queries"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/jobs"

	"gorm.io/gorm"
)

const defaultDownloadURLTTL = 15 * time.Minute

// CompositionRoot wires every adapter and handler of the application. All
// wiring is compile-time; there is no container.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	platform   *commerce.Client
	files      *s3.FileStore
	dispatcher *events.Dispatcher
	pricing    *services.PricingService
	policy     *services.FilePolicy
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph and subscribes the notification
// handlers to the in-process event dispatcher.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	platform, err := commerce.NewClient(config.CommerceBaseURL, config.CommerceAPIKey)
	if err != nil {
		return nil, fmt.Errorf("create platform client: %w", err)
	}

	files, err := s3.NewFileStore(ctx, config.S3Bucket, config.S3Prefix)
	if err != nil {
		return nil, fmt.Errorf("create file store: %w", err)
	}

	dispatcher := events.NewDispatcher(logger)
	dispatcher.Subscribe(eventhandlers.NewMailNotificationHandler(platform, platform))
	dispatcher.Subscribe(eventhandlers.NewThreadMessageHandler(platform))

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		platform:   platform,
		files:      files,
		dispatcher: dispatcher,
		pricing:    services.NewPricingService(),
		policy:     services.NewFilePolicy(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.fullUoWFactory(), c.pricing, c.platform, c.platform, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateConfirmDepositPaymentCommandHandler() commands.ConfirmDepositPaymentCommandHandler {
	return commands.NewConfirmDepositPaymentCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateUploadDemoCommandHandler() commands.UploadDemoCommandHandler {
	return commands.NewUploadDemoCommandHandler(c.orderUoWFactory(), c.policy, c.files, c.dispatcher)
}

func (c *CompositionRoot) CreateApproveDemoCommandHandler() commands.ApproveDemoCommandHandler {
	return commands.NewApproveDemoCommandHandler(c.orderUoWFactory(), c.platform, c.dispatcher)
}

func (c *CompositionRoot) CreateRequestRevisionCommandHandler() commands.RequestRevisionCommandHandler {
	return commands.NewRequestRevisionCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateConfirmFinalPaymentCommandHandler() commands.ConfirmFinalPaymentCommandHandler {
	return commands.NewConfirmFinalPaymentCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateUploadFinalFilesCommandHandler() commands.UploadFinalFilesCommandHandler {
	return commands.NewUploadFinalFilesCommandHandler(c.orderUoWFactory(), c.policy, c.files, c.dispatcher)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.orderUoWFactory(), c.platform, c.dispatcher)
}

func (c *CompositionRoot) CreateUploadReferenceTracksCommandHandler() commands.UploadReferenceTracksCommandHandler {
	return commands.NewUploadReferenceTracksCommandHandler(c.orderUoWFactory(), c.policy, c.files)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProducerOrdersQueryHandler() queries.GetProducerOrdersQueryHandler {
	return queries.NewGetProducerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDownloadURLQueryHandler() queries.GetDownloadURLQueryHandler {
	return queries.NewGetDownloadURLQueryHandler(c.gormDB, c.files, c.downloadURLTTL())
}

// CreateServer assembles the HTTP server with every handler wired.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateConfirmDepositPaymentCommandHandler(),
		c.CreateUploadDemoCommandHandler(),
		c.CreateApproveDemoCommandHandler(),
		c.CreateRequestRevisionCommandHandler(),
		c.CreateConfirmFinalPaymentCommandHandler(),
		c.CreateUploadFinalFilesCommandHandler(),
		c.CreateConfirmReceiptCommandHandler(),
		c.CreateUploadReferenceTracksCommandHandler(),
		c.CreateGetOrderDetailsQueryHandler(),
		c.CreateGetProducerOrdersQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetDownloadURLQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs. The reminder job reads
// outside any unit of work, so its repository binds to the main connection.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	orderRepository := c.uowFactory.Create().OrderRepository()
	return jobs.NewJobManager(orderRepository, c.platform, c.platform, c.platform, c.logger)
}

// TokenSecret returns the HMAC secret the API validates bearer tokens with.
func (c *CompositionRoot) TokenSecret() []byte {
	return []byte(c.config.TokenSecret)
}

func (c *CompositionRoot) downloadURLTTL() time.Duration {
	ttl, err := time.ParseDuration(c.config.DownloadURLTTL)
	if err != nil || ttl <= 0 {
		return defaultDownloadURLTTL
	}
	return ttl
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
