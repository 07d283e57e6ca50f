package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "parcelquote/internal/adapters/in/http"
	"parcelquote/internal/adapters/out/geocoding"
	"parcelquote/internal/adapters/out/passwords"
	"parcelquote/internal/adapters/out/payments"
	"parcelquote/internal/adapters/out/postgres"
	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/application/usecases/queries"
	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	clock      ports.Clock
	calculator *services.PriceCalculator
	geocoder   ports.Geocoder
	payments   ports.PaymentGateway
	hasher     ports.PasswordHasher
	sessions   ports.SessionStore
}

// NewCompositionRoot builds the shared collaborators. The HTTP geocoder is used
// when GEOCODER_BASE_URL is set, the built-in gazetteer otherwise.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	sessions ports.SessionStore,
	tariff services.Tariff,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	calculator, err := services.NewPriceCalculator(tariff)
	if err != nil {
		return nil, err
	}

	hasher, err := passwords.NewBcryptHasher(config.BcryptCost)
	if err != nil {
		return nil, err
	}

	var geocoder ports.Geocoder = geocoding.NewGazetteer()
	if config.GeocoderBaseURL != "" {
		geocoder, err = geocoding.NewHTTPClient(geocoding.HTTPConfig{
			BaseURL:           config.GeocoderBaseURL,
			APIKey:            config.GeocoderAPIKey,
			RequestsPerSecond: config.GeocoderRPS,
			Timeout:           config.GeocoderTimeout,
		})
		if err != nil {
			return nil, err
		}
	}

	clock := ports.SystemClock()

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      clock,
		calculator: calculator,
		geocoder:   geocoder,
		payments:   payments.NewSimulatedGateway(config.PaymentLatency, clock),
		hasher:     hasher,
		sessions:   sessions,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRequestQuoteCommandHandler() commands.RequestQuoteCommandHandler {
	return commands.NewRequestQuoteCommandHandler(c.geocoder, c.calculator, c.config.QuoteTimeout)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(
		c.CreateRequestQuoteCommandHandler(),
		c.payments,
		c.orderUoWFactory(),
		c.clock,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.payments, c.clock)
}

func (c *CompositionRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	return commands.NewRegisterAccountCommandHandler(c.accountUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.accountUoWFactory(), c.hasher, c.sessions, c.clock, c.config.SessionTTL)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateReleaseScheduledOrdersCommandHandler() commands.ReleaseScheduledOrdersCommandHandler {
	return commands.NewReleaseScheduledOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceTrackingCommandHandler() commands.AdvanceTrackingCommandHandler {
	return commands.NewAdvanceTrackingCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListAccountOrdersQueryHandler() queries.ListAccountOrdersQueryHandler {
	return queries.NewListAccountOrdersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Dependencies{
		Quotes:      c.CreateRequestQuoteCommandHandler(),
		Checkout:    c.CreateCheckoutCommandHandler(),
		CancelOrder: c.CreateCancelOrderCommandHandler(),
		Login:       c.CreateLoginCommandHandler(),
		Logout:      c.CreateLogoutCommandHandler(),
		GetOrder:    c.CreateGetOrderQueryHandler(),
		ListOrders:  c.CreateListAccountOrdersQueryHandler(),
		Sessions:    c.sessions,
		Tariff:      c.calculator.Tariff(),
		Clock:       c.clock,
		Logger:      c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(jobs.Config{
		ReleaseSchedule:  c.config.ReleaseSchedule,
		TrackingSchedule: c.config.TrackingSchedule,
		BatchSize:        c.config.JobBatchSize,
	}, c.CreateReleaseScheduledOrdersCommandHandler(), c.CreateAdvanceTrackingCommandHandler(), c.logger)
}

// demoAccounts are seeded on start-up so the demo login works out of the box.
var demoAccounts = []struct {
	email       string
	displayName string
	role        account.Role
}{
	{"customer@parcelquote.test", "Demo Customer", account.Customer},
	{"driver@parcelquote.test", "Demo Driver", account.Driver},
	{"admin@parcelquote.test", "Demo Admin", account.Admin},
}

// SeedDemoAccounts registers the demo accounts that do not exist yet.
func (c *CompositionRoot) SeedDemoAccounts(ctx context.Context) error {
	handler := c.CreateRegisterAccountCommandHandler()
	for _, demo := range demoAccounts {
		cmd, err := commands.NewRegisterAccountCommand(demo.email, demo.displayName, demo.role, c.config.DemoPassword)
		if err != nil {
			return fmt.Errorf("demo account %s: %w", demo.email, err)
		}
		if _, err = handler.Handle(ctx, cmd); err != nil {
			if errors.Is(err, commands.ErrAccountAlreadyExists) {
				continue
			}
			return fmt.Errorf("demo account %s: %w", demo.email, err)
		}
		c.logger.InfoContext(ctx, "Seeded demo account", "email", demo.email, "role", demo.role.String())
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}
