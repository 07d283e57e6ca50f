// Package payments provides a simulated card gateway. No money moves; card
// numbers are checked for format and a few well-known test numbers are
// declined so that every failure path can be exercised end to end.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	serviceName  = ports.PaymentGatewayService
	chargePrefix = "ch_"
)

// Test card numbers with a fixed outcome.
const (
	CardDeclined          = "4000000000000002"
	CardInsufficientFunds = "4000000000009995"
	CardProcessingError   = "4000000000000119"
)

var (
	ErrCardDeclined         = errors.New("card declined")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrProcessingError      = errors.New("processing error")
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")
	ErrPartialRefund        = errors.New("refund amount differs from the charge")
)

// SimulatedGateway implements ports.PaymentGateway in memory.
type SimulatedGateway struct {
	latency time.Duration
	clock   ports.Clock

	mu      sync.Mutex
	charges map[string]ports.Charge
	byKey   map[string]string
	refunds map[string]ports.Refund
}

func NewSimulatedGateway(latency time.Duration, clock ports.Clock) *SimulatedGateway {
	return &SimulatedGateway{
		latency: latency,
		clock:   clock,
		charges: make(map[string]ports.Charge),
		byKey:   make(map[string]string),
		refunds: make(map[string]ports.Refund),
	}
}

// Charge captures req.Amount. A repeated IdempotencyKey returns the original
// charge without waiting.
func (g *SimulatedGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Charge, error) {
	if err := validateChargeRequest(req, g.clock.Now()); err != nil {
		return ports.Charge{}, err
	}

	g.mu.Lock()
	if id, ok := g.byKey[req.IdempotencyKey]; ok {
		existing := g.charges[id]
		g.mu.Unlock()
		if !existing.Amount.IsEqual(req.Amount) {
			return ports.Charge{}, errs.NewValueIsInvalidErrorWithCause("idempotency key", ErrIdempotencyKeyReused)
		}
		return existing, nil
	}
	g.mu.Unlock()

	if err := g.wait(ctx); err != nil {
		return ports.Charge{}, err
	}

	number := digitsOnly(req.Card.Number)
	switch number {
	case CardDeclined:
		return ports.Charge{}, errs.NewExternalServiceError(serviceName, errs.KindRejected, ErrCardDeclined)
	case CardInsufficientFunds:
		return ports.Charge{}, errs.NewExternalServiceError(serviceName, errs.KindRejected, ErrInsufficientFunds)
	case CardProcessingError:
		return ports.Charge{}, errs.NewExternalServiceError(serviceName, errs.KindUnavailable, ErrProcessingError)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// A concurrent call with the same key may have won while we waited.
	if id, ok := g.byKey[req.IdempotencyKey]; ok {
		return g.charges[id], nil
	}

	charge := ports.Charge{
		ID:         newID(chargePrefix),
		Amount:     req.Amount,
		CardLast4:  number[len(number)-4:],
		CapturedAt: g.clock.Now(),
	}
	g.charges[charge.ID] = charge
	g.byKey[req.IdempotencyKey] = charge.ID
	return charge, nil
}

// Refund returns the full amount of req.ChargeID. Refunding twice returns the
// first refund. Charges captured before the gateway was created are unknown
// to it; a well-formed charge id is then refunded for req.Amount.
func (g *SimulatedGateway) Refund(ctx context.Context, req ports.RefundRequest) (ports.Refund, error) {
	if err := validateRefundRequest(req); err != nil {
		return ports.Refund{}, err
	}

	g.mu.Lock()
	charge, known := g.charges[req.ChargeID]
	refund, refunded := g.refunds[req.ChargeID]
	g.mu.Unlock()

	if refunded {
		return refund, nil
	}
	if known && !charge.Amount.IsEqual(req.Amount) {
		return ports.Refund{}, errs.NewValueIsInvalidErrorWithCause("refund amount", ErrPartialRefund)
	}

	if err := g.wait(ctx); err != nil {
		return ports.Refund{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.refunds[req.ChargeID]; ok {
		return existing, nil
	}
	refund = ports.Refund{
		ID:         newID("re_"),
		ChargeID:   req.ChargeID,
		Amount:     req.Amount,
		RefundedAt: g.clock.Now(),
	}
	g.refunds[req.ChargeID] = refund
	return refund, nil
}

// IsRefunded reports whether chargeID has been refunded.
func (g *SimulatedGateway) IsRefunded(chargeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.refunds[chargeID]
	return ok
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return errs.ClassifyContextError(serviceName, ctx.Err())
	}

	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errs.NewExternalServiceError(serviceName, errs.KindTimeout, ctx.Err())
	}
}

func validateChargeRequest(req ports.ChargeRequest, now time.Time) error {
	var amountErr error
	if err := req.Amount.Validate(); err != nil {
		amountErr = err
	} else if req.Amount.IsZero() || req.Amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", errors.New("must be positive"))
	}

	var keyErr error
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		keyErr = errs.NewValueIsRequiredError("idempotency key")
	}

	return errors.Join(amountErr, keyErr, validateCard(req.Card, now))
}

func validateRefundRequest(req ports.RefundRequest) error {
	var idErr error
	switch id := strings.TrimSpace(req.ChargeID); {
	case id == "":
		idErr = errs.NewValueIsRequiredError("charge id")
	case !strings.HasPrefix(id, chargePrefix) || len(id) == len(chargePrefix):
		idErr = errs.NewObjectNotFoundError("charge", req.ChargeID)
	}

	var amountErr error
	if err := req.Amount.Validate(); err != nil {
		amountErr = err
	} else if req.Amount.IsZero() || req.Amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("refund amount", errors.New("must be positive"))
	}

	return errors.Join(idErr, amountErr)
}

func validateCard(card ports.Card, now time.Time) error {
	var numberErr error
	number := digitsOnly(card.Number)
	switch {
	case number == "":
		numberErr = errs.NewValueIsRequiredError("card number")
	case len(number) != len(strings.Map(dropSeparators, card.Number)):
		numberErr = errs.NewValueIsInvalidErrorWithCause("card number", errors.New("contains non-digits"))
	case len(number) < 12 || len(number) > 19:
		numberErr = errs.NewValueIsOutOfRangeError("card number length", len(number), 12, 19)
	case !luhnValid(number):
		numberErr = errs.NewValueIsInvalidErrorWithCause("card number", errors.New("fails checksum"))
	}

	var expiryErr error
	switch {
	case card.ExpMonth < 1 || card.ExpMonth > 12:
		expiryErr = errs.NewValueIsOutOfRangeError("expiry month", card.ExpMonth, 1, 12)
	default:
		// A card is valid through the last instant of its expiry month.
		firstOfNext := time.Date(card.ExpYear, time.Month(card.ExpMonth)+1, 1, 0, 0, 0, 0, time.UTC)
		if !now.Before(firstOfNext) {
			expiryErr = errs.NewValueIsInvalidErrorWithCause("card expiry",
				fmt.Errorf("expired %02d/%d", card.ExpMonth, card.ExpYear))
		}
	}

	var cvcErr error
	if cvc := strings.TrimSpace(card.CVC); len(cvc) < 3 || len(cvc) > 4 || digitsOnly(cvc) != cvc {
		cvcErr = errs.NewValueIsInvalidErrorWithCause("card cvc", errors.New("must be 3 or 4 digits"))
	}

	return errors.Join(numberErr, expiryErr, cvcErr)
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
}

// dropSeparators removes the spaces and dashes people type inside card numbers.
func dropSeparators(r rune) rune {
	if r == ' ' || r == '-' {
		return -1
	}
	return r
}

func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
