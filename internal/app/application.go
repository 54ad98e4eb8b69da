package app

import (
	"log/slog"
	"time"

	"trio/internal/app/commands"
	availabilityapp "trio/internal/app/handlers/availability"
	bookingapp "trio/internal/app/handlers/booking"
	listingapp "trio/internal/app/handlers/listings"
	"trio/internal/app/middleware"
	"trio/internal/app/outbox"
	"trio/internal/app/policies"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
)

// Dependencies are the ports the application layer is assembled from.
type Dependencies struct {
	UoWFactory      uow.UoWFactory
	Pricing         policies.PricingPort
	Outbox          outbox.Outbox
	Encoder         outbox.EventEncoder
	Idempotency     middleware.IdempotencyStore
	Logger          *slog.Logger
	DefaultCurrency string
	Now             func() time.Time
}

// Application exposes the command and query buses with their middleware applied.
type Application struct {
	Commands commands.Bus
	Queries  queries.Bus

	CommandKeys []string
	QueryKeys   []string
}

func New(deps Dependencies) *Application {
	encoder := deps.Encoder
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	currency := deps.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, &listingapp.CreateListingHandler{
		UoWFactory: deps.UoWFactory, Outbox: deps.Outbox, Encoder: encoder, DefaultCurrency: currency, Now: deps.Now,
	})
	commands.RegisterHandler(commandBus, &listingapp.SetListingStateHandler{
		UoWFactory: deps.UoWFactory, Outbox: deps.Outbox, Encoder: encoder, Now: deps.Now,
	})
	commands.RegisterHandler(commandBus, &listingapp.BlockDatesHandler{
		UoWFactory: deps.UoWFactory, Outbox: deps.Outbox, Encoder: encoder, Now: deps.Now,
	})
	commands.RegisterHandler(commandBus, &bookingapp.RequestBookingHandler{
		UoWFactory: deps.UoWFactory, Pricing: deps.Pricing, Outbox: deps.Outbox, Encoder: encoder, Now: deps.Now,
	})
	commands.RegisterHandler(commandBus, &bookingapp.ExtendBookingHandler{
		UoWFactory: deps.UoWFactory, Pricing: deps.Pricing, Outbox: deps.Outbox, Encoder: encoder, Now: deps.Now,
	})
	commands.RegisterHandler(commandBus, &bookingapp.TransitionBookingHandler{
		UoWFactory: deps.UoWFactory, Outbox: deps.Outbox, Encoder: encoder, Now: deps.Now,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, &listingapp.GetListingHandler{UoWFactory: deps.UoWFactory})
	queries.RegisterHandler(queryBus, &listingapp.ListListingsHandler{UoWFactory: deps.UoWFactory})
	queries.RegisterHandler(queryBus, &availabilityapp.GetCalendarHandler{UoWFactory: deps.UoWFactory})
	queries.RegisterHandler(queryBus, &bookingapp.QuoteBookingHandler{UoWFactory: deps.UoWFactory, Pricing: deps.Pricing})
	queries.RegisterHandler(queryBus, &bookingapp.QuoteExtensionHandler{UoWFactory: deps.UoWFactory, Pricing: deps.Pricing})
	queries.RegisterHandler(queryBus, &bookingapp.GetBookingHandler{UoWFactory: deps.UoWFactory})
	queries.RegisterHandler(queryBus, &bookingapp.ListRenterBookingsHandler{UoWFactory: deps.UoWFactory})

	mws := []middleware.CommandMiddleware{
		middleware.Logging(deps.Logger),
		middleware.Validation(),
	}
	if deps.Idempotency != nil {
		mws = append(mws, middleware.Idempotency(deps.Idempotency, nil))
	}
	if deps.Outbox != nil {
		mws = append(mws, middleware.OutboxFlush(deps.Outbox))
	}
	mws = append(mws, middleware.Transaction(deps.UoWFactory, nil))

	return &Application{
		Commands: middleware.ChainCommands(commandBus, mws...),
		Queries: middleware.ChainQueries(queryBus,
			middleware.QueryLogging(deps.Logger),
			middleware.QueryValidation(),
		),
		CommandKeys: commandBus.Keys(),
		QueryKeys:   queryBus.Keys(),
	}
}
