package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "parcelquote/internal/adapters/in/http"
	"parcelquote/internal/adapters/out/geocoding"
	"parcelquote/internal/adapters/out/sessionstore"
	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/application/usecases/queries"
	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/generated/servers"
	"parcelquote/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	e          *echo.Echo
	sessions   *sessionstore.MemoryStore
	calculator *services.PriceCalculator

	checkout    *MockCheckoutHandler
	cancelOrder *MockCancelOrderHandler
	login       *MockLoginHandler
	logout      *MockLogoutHandler
	getOrder    *MockGetOrderHandler
	listOrders  *MockListOrdersHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := ports.ClockFunc(func() time.Time { return testNow })
	calculator, err := services.NewPriceCalculator(services.DefaultTariff())
	require.NoError(t, err)

	f := &fixture{
		sessions:    sessionstore.NewMemoryStore(clock),
		calculator:  calculator,
		checkout:    new(MockCheckoutHandler),
		cancelOrder: new(MockCancelOrderHandler),
		login:       new(MockLoginHandler),
		logout:      new(MockLogoutHandler),
		getOrder:    new(MockGetOrderHandler),
		listOrders:  new(MockListOrdersHandler),
	}

	server := httpadapter.NewServer(httpadapter.Dependencies{
		Quotes:      commands.NewRequestQuoteCommandHandler(geocoding.NewGazetteer(), calculator, time.Second),
		Checkout:    f.checkout,
		CancelOrder: f.cancelOrder,
		Login:       f.login,
		Logout:      f.logout,
		GetOrder:    f.getOrder,
		ListOrders:  f.listOrders,
		Sessions:    f.sessions,
		Tariff:      calculator.Tariff(),
		Clock:       clock,
		Logger:      slogDiscard(),
	})

	f.e, err = httpadapter.NewRouter(t.Context(), server, slogDiscard())
	require.NoError(t, err)

	return f
}

func (f *fixture) session(t *testing.T, role account.Role) account.Session {
	t.Helper()
	s, err := account.NewSession(kernel.NewUUID(), role, testNow, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Save(t.Context(), s))
	return s
}

func (f *fixture) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func bearer(s account.Session) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + s.Token()}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func placedOrder(t *testing.T, f *fixture, owner kernel.UUID) *order.Order {
	t.Helper()
	weight := 1.0
	cmd, err := commands.NewRequestQuoteCommand(commands.QuoteInput{
		PickupAddress:   "Camden",
		DeliveryAddress: "Westminster",
		Category:        "documents",
		WeightKg:        &weight,
	}, testNow)
	require.NoError(t, err)
	price, err := f.calculator.Price(cmd.Request(), 0)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), owner, cmd.Request(), price, "ch_test", testNow)
	require.NoError(t, err)
	return o
}

const checkoutBody = `{
	"quote": {"pickupAddress": "Camden", "deliveryAddress": "Westminster", "category": "documents", "weightKg": 1},
	"card": {"number": "4242424242424242", "expMonth": 12, "expYear": 2030, "cvc": "123"}
}`

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_SwaggerDoc(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/swagger/doc.json", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Parcel Quote API")
	assert.Contains(t, rec.Body.String(), "/api/v1/quotes")
}

func TestServer_GetTariff(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tariff", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	tariff := decode[servers.Tariff](t, rec)
	assert.Equal(t, "GBP", tariff.Currency)
	assert.Equal(t, "6.00", tariff.BaseFee.Amount)
	assert.Equal(t, int64(150), tariff.StandardCategoryFee.Minor)
	assert.Equal(t, int64(350), tariff.PremiumCategoryFee.Minor)
	assert.ElementsMatch(t, []servers.ProductCategory{servers.Electronics, servers.Medical}, tariff.PremiumCategories)
	assert.InDelta(t, 2.0, tariff.WeightFreeKg, 1e-9)
	assert.InDelta(t, 50.0, tariff.MaxDistanceKm, 1e-9)
}

func TestServer_CreateQuote(t *testing.T) {
	tomorrow := testNow.Add(24 * time.Hour).Format(time.RFC3339)
	dayAfter := testNow.Add(48 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name          string
		body          string
		expectedCode  int
		expectedTotal int64
	}{
		{
			name:          "documents 1 kg instant within the free radius",
			body:          `{"pickupAddress": "London", "deliveryAddress": "London", "category": "documents", "weightKg": 1}`,
			expectedCode:  http.StatusOK,
			expectedTotal: 600 + 150,
		},
		{
			name: "electronics 4 kg scheduled",
			body: `{"pickupAddress": "London", "deliveryAddress": "london", "category": "Electronics", "weightKg": 4,
				"schedulingType": "scheduled", "pickupAt": "` + tomorrow + `", "dropoffAt": "` + dayAfter + `"}`,
			expectedCode:  http.StatusOK,
			expectedTotal: 600 + 350 + 300 + 250,
		},
		{
			name:         "unknown category",
			body:         `{"pickupAddress": "London", "deliveryAddress": "Camden", "category": "weapons"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "blank address",
			body:         `{"pickupAddress": "  ", "deliveryAddress": "Camden", "category": "books"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "scheduled without a window",
			body:         `{"pickupAddress": "London", "deliveryAddress": "Camden", "category": "books", "schedulingType": "scheduled"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing required field rejected by the schema",
			body:         `{"deliveryAddress": "Camden", "category": "books"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative weight rejected by the schema",
			body:         `{"pickupAddress": "London", "deliveryAddress": "Camden", "category": "books", "weightKg": -1}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "outside the service area",
			body:         `{"pickupAddress": "Cambridge", "deliveryAddress": "Brighton", "category": "books"}`,
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/api/v1/quotes", tt.body, nil)

			require.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
			if tt.expectedCode != http.StatusOK {
				apiErr := decode[servers.Error](t, rec)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				assert.NotEmpty(t, apiErr.Message)
				return
			}
			q := decode[servers.Quote](t, rec)
			assert.Equal(t, tt.expectedTotal, q.Price.Total.Minor)
			assert.Equal(t, "GBP", q.Price.Total.Currency)
		})
	}
}

func TestServer_CreateSession(t *testing.T) {
	t.Run("issues a session", func(t *testing.T) {
		f := newFixture(t)
		accountID := kernel.NewUUID()
		session, err := account.NewSession(accountID, account.Customer, testNow, time.Hour)
		require.NoError(t, err)
		f.login.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.LoginCommand) bool {
			return cmd.Email() == "customer@parcelquote.test"
		})).Return(session, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/sessions",
			`{"email": "customer@parcelquote.test", "password": "customer123"}`, nil)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode[servers.Session](t, rec)
		assert.Equal(t, session.Token(), body.Token)
		assert.Equal(t, "customer", body.Role)
		assert.Equal(t, accountID.Bytes(), body.AccountId)
		f.login.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		f.login.On("Handle", mock.Anything, mock.Anything).
			Return(account.Session{}, commands.ErrInvalidCredentials).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/sessions",
			`{"email": "customer@parcelquote.test", "password": "nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", decode[servers.Error](t, rec).Message)
	})
}

func TestServer_DeleteSession(t *testing.T) {
	f := newFixture(t)
	session := f.session(t, account.Customer)
	f.logout.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.LogoutCommand) bool {
		return cmd.Session().Token() == session.Token()
	})).Return(nil).Once()

	rec := f.do(t, http.MethodDelete, "/api/v1/sessions", "", bearer(session))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.logout.AssertExpectations(t)
}

func TestServer_Authentication(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no header"},
		{name: "wrong scheme", headers: map[string]string{echo.HeaderAuthorization: "Basic abc"}},
		{name: "empty token", headers: map[string]string{echo.HeaderAuthorization: "Bearer "}},
		{name: "unknown token", headers: map[string]string{echo.HeaderAuthorization: "Bearer not-issued"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/api/v1/orders", "", tt.headers)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	f.listOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_ListOrders(t *testing.T) {
	t.Run("returns the account's orders", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		summary := queries.OrderSummary{
			ID:              kernel.NewUUID(),
			PickupAddress:   "Camden",
			DeliveryAddress: "Westminster",
			Category:        "books",
			SchedulingType:  "instant",
			Status:          "confirmed",
			Total:           kernel.GBP(750),
			CreatedAt:       testNow,
		}
		f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListAccountOrdersQuery) bool {
			return q.Limit() == 10 && q.Session().AccountID().IsEqual(session.AccountID())
		})).Return([]queries.OrderSummary{summary}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/orders?limit=10", "", bearer(session))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[[]servers.OrderSummary](t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, summary.ID.Bytes(), body[0].Id)
		assert.Equal(t, "7.50", body[0].Total.Amount)
		f.listOrders.AssertExpectations(t)
	})

	t.Run("limit above the maximum", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)

		rec := f.do(t, http.MethodGet, "/api/v1/orders?limit=500", "", bearer(session))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CreateOrder(t *testing.T) {
	t.Run("places and charges the order", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		placed := placedOrder(t, f, session.AccountID())
		charge := ports.Charge{ID: "ch_test", Amount: placed.Price().Total, CardLast4: "4242", CapturedAt: testNow}
		f.checkout.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CheckoutCommand) bool {
			return cmd.IdempotencyKey() == "key-1" &&
				cmd.Card().Number == "4242424242424242" &&
				cmd.Quote().Request().PickupAddress() == "Camden"
		})).Return(commands.CheckoutResult{Order: placed, Charge: charge}, nil).Once()

		headers := bearer(session)
		headers["Idempotency-Key"] = "key-1"
		rec := f.do(t, http.MethodPost, "/api/v1/orders", checkoutBody, headers)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode[servers.PlacedOrder](t, rec)
		assert.Equal(t, placed.ID().Bytes(), body.Order.Id)
		assert.Equal(t, "confirmed", body.Order.Status)
		assert.Equal(t, "ch_test", body.Charge.Id)
		assert.Equal(t, body.Order.Price.Total, body.Charge.Amount)
		require.NotEmpty(t, body.Order.Timeline)
		f.checkout.AssertExpectations(t)
	})

	t.Run("missing idempotency key", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)

		rec := f.do(t, http.MethodPost, "/api/v1/orders", checkoutBody, bearer(session))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.checkout.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"card declined", errs.NewExternalServiceError(ports.PaymentGatewayService, errs.KindRejected, nil), http.StatusPaymentRequired},
		{"gateway timeout", errs.NewExternalServiceError(ports.PaymentGatewayService, errs.KindTimeout, nil), http.StatusGatewayTimeout},
		{"geocoder down", errs.NewExternalServiceError("geocoder", errs.KindUnavailable, nil), http.StatusServiceUnavailable},
		{"role cannot check out", errs.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			session := f.session(t, account.Customer)
			f.checkout.On("Handle", mock.Anything, mock.Anything).
				Return(commands.CheckoutResult{}, tc.err).Once()

			headers := bearer(session)
			headers["Idempotency-Key"] = "key-err"
			rec := f.do(t, http.MethodPost, "/api/v1/orders", checkoutBody, headers)

			assert.Equal(t, tc.expectedCode, rec.Code, rec.Body.String())
			assert.Equal(t, tc.expectedCode, decode[servers.Error](t, rec).Code)
		})
	}
}

func TestServer_GetOrder(t *testing.T) {
	t.Run("returns the order with its timeline", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		orderID := kernel.NewUUID()
		view := queries.GetOrderQueryResponse{
			ID:              orderID,
			AccountID:       session.AccountID(),
			PickupAddress:   "Camden",
			DeliveryAddress: "Westminster",
			Category:        "documents",
			WeightGrams:     1500,
			SchedulingType:  "instant",
			Price: queries.PriceView{
				TariffVersion:      "2026-01",
				BaseFee:            kernel.GBP(600),
				CategoryFee:        kernel.GBP(150),
				WeightSurcharge:    kernel.GBP(0),
				DistanceFee:        kernel.GBP(0),
				ScheduledSurcharge: kernel.GBP(0),
				Total:              kernel.GBP(750),
			},
			ChargeID: "ch_test",
			Status:   "confirmed",
			Timeline: []queries.TimelineEntry{{Status: "confirmed", At: testNow, Note: "Order confirmed"}},
		}
		f.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID().IsEqual(orderID)
		})).Return(view, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/orders/"+orderID.String(), "", bearer(session))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[servers.Order](t, rec)
		assert.Equal(t, orderID.Bytes(), body.Id)
		assert.InDelta(t, 1.5, body.WeightKg, 1e-9)
		assert.Equal(t, "7.50", body.Price.Total.Amount)
		require.Len(t, body.Timeline, 1)
		require.NotNil(t, body.Timeline[0].Note)
		assert.Equal(t, "Order confirmed", *body.Timeline[0].Note)
		assert.Nil(t, body.PickupAt)
	})

	errorCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"not found", errs.NewObjectNotFoundError("orderID", "x"), http.StatusNotFound},
		{"someone else's order", errs.ErrForbidden, http.StatusForbidden},
		{"unexpected failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			session := f.session(t, account.Customer)
			f.getOrder.On("Handle", mock.Anything, mock.Anything).
				Return(queries.GetOrderQueryResponse{}, tc.err).Once()

			rec := f.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", bearer(session))

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		})
	}

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)

		rec := f.do(t, http.MethodGet, "/api/v1/orders/not-a-uuid", "", bearer(session))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_CancelOrder(t *testing.T) {
	t.Run("cancels and refunds", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		placed := placedOrder(t, f, session.AccountID())
		require.NoError(t, placed.Cancel(testNow, "changed my mind"))
		refund := ports.Refund{ID: "re_test", ChargeID: "ch_test", Amount: placed.Price().Total, RefundedAt: testNow}
		f.cancelOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
			return cmd.OrderID().IsEqual(placed.ID()) && cmd.Reason() == "changed my mind"
		})).Return(commands.CancelOrderResult{Order: placed, Refund: refund}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/orders/"+placed.ID().String()+"/cancel",
			`{"reason": "changed my mind"}`, bearer(session))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[servers.CancelledOrder](t, rec)
		assert.Equal(t, "cancelled", body.Order.Status)
		assert.Equal(t, "re_test", body.Refund.Id)
		f.cancelOrder.AssertExpectations(t)
	})

	t.Run("without a body", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		placed := placedOrder(t, f, session.AccountID())
		require.NoError(t, placed.Cancel(testNow, ""))
		f.cancelOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
			return cmd.Reason() == ""
		})).Return(commands.CancelOrderResult{Order: placed}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/orders/"+placed.ID().String()+"/cancel", "", bearer(session))

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("already picked up", func(t *testing.T) {
		f := newFixture(t)
		session := f.session(t, account.Customer)
		f.cancelOrder.On("Handle", mock.Anything, mock.Anything).
			Return(commands.CancelOrderResult{}, &order.InvalidTransitionError{From: order.PickedUp, Action: "cancel"}).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/cancel", "", bearer(session))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
