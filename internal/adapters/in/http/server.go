// Package http is the REST adapter. Server implements servers.ServerInterface,
// generated from api/openapi.yml, by translating requests into commands and
// queries and their results back into API models.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/application/usecases/queries"
	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/generated/servers"
	"parcelquote/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on. The concrete handlers in
// usecases/commands and usecases/queries satisfy them.
type (
	QuoteHandler interface {
		Handle(ctx context.Context, cmd commands.RequestQuoteCommand) (commands.QuoteResult, error)
	}
	CheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (commands.CheckoutResult, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error)
	}
	LoginHandler interface {
		Handle(ctx context.Context, cmd commands.LoginCommand) (account.Session, error)
	}
	LogoutHandler interface {
		Handle(ctx context.Context, cmd commands.LogoutCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListAccountOrdersQuery) ([]queries.OrderSummary, error)
	}
)

// Dependencies groups everything NewServer needs.
type Dependencies struct {
	Quotes      QuoteHandler
	Checkout    CheckoutHandler
	CancelOrder CancelOrderHandler
	Login       LoginHandler
	Logout      LogoutHandler
	GetOrder    GetOrderHandler
	ListOrders  ListOrdersHandler

	Sessions ports.SessionStore
	Tariff   services.Tariff
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Server implements servers.ServerInterface.
type Server struct {
	quotes      QuoteHandler
	checkout    CheckoutHandler
	cancelOrder CancelOrderHandler
	login       LoginHandler
	logout      LogoutHandler
	getOrder    GetOrderHandler
	listOrders  ListOrdersHandler

	sessions ports.SessionStore
	tariff   services.Tariff
	clock    ports.Clock
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		quotes:      deps.Quotes,
		checkout:    deps.Checkout,
		cancelOrder: deps.CancelOrder,
		login:       deps.Login,
		logout:      deps.Logout,
		getOrder:    deps.GetOrder,
		listOrders:  deps.ListOrders,
		sessions:    deps.Sessions,
		tariff:      deps.Tariff,
		clock:       deps.Clock,
		logger:      logger.With("component", "http"),
	}
}

// GetTariff handles GET /api/v1/tariff.
func (s *Server) GetTariff(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, tariffToAPI(s.tariff))
}

// CreateQuote handles POST /api/v1/quotes.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var body servers.CreateQuoteJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRequestQuoteCommand(quoteInput(body), s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.quotes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteToAPI(result))
}

// CreateSession handles POST /api/v1/sessions.
func (s *Server) CreateSession(ctx echo.Context) error {
	var body servers.CreateSessionJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLoginCommand(body.Email, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	session, err := s.login.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Session{
		Token:     session.Token(),
		AccountId: session.AccountID().Bytes(),
		Role:      session.Role().String(),
		ExpiresAt: session.ExpiresAt(),
	})
}

// DeleteSession handles DELETE /api/v1/sessions.
func (s *Server) DeleteSession(ctx echo.Context) error {
	session, err := s.authenticate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewLogoutCommand(session)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.logout.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders. The quote is priced again at
// checkout; the client's earlier quote is never trusted.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	session, err := s.authenticate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	quoteCmd, err := commands.NewRequestQuoteCommand(quoteInput(body.Quote), s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(session, quoteCmd, cardFromAPI(body.Card), params.IdempotencyKey)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.PlacedOrder{
		Order:  orderToAPI(result.Order),
		Charge: chargeToAPI(result.Charge),
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	session, err := s.authenticate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListAccountOrdersQuery(session, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	summaries, err := s.listOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.OrderSummary, len(summaries))
	for i, summary := range summaries {
		response[i] = summaryToAPI(summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	session, err := s.authenticate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(session, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewToAPI(view))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID servers.OrderId) error {
	session, err := s.authenticate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CancelOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	reason := ""
	if body.Reason != nil {
		reason = *body.Reason
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(session, id, reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.cancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.CancelledOrder{
		Order:  orderToAPI(result.Order),
		Refund: refundToAPI(result.Refund),
	})
}

// authenticate resolves the bearer token to a live session.
func (s *Server) authenticate(ctx echo.Context) (account.Session, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return account.Session{}, errs.ErrUnauthorized
	}
	return s.sessions.Get(ctx.Request().Context(), strings.TrimSpace(token))
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"status", status,
			"error", err,
		)
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}
