package ports

import (
	"context"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
)

// PaymentGatewayService names the gateway in errs.ExternalServiceError.
const PaymentGatewayService = "payment gateway"

// Card is the payment instrument entered at checkout.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
	Holder   string
}

// ChargeRequest asks the gateway to take Amount from Card. Retrying with the
// same IdempotencyKey never charges twice.
type ChargeRequest struct {
	IdempotencyKey string
	Amount         kernel.Money
	Card           Card
	Description    string
}

// Charge is a successful capture.
type Charge struct {
	ID         string
	Amount     kernel.Money
	CardLast4  string
	CapturedAt time.Time
}

// RefundRequest asks the gateway to return Amount, the full amount of ChargeID.
type RefundRequest struct {
	ChargeID string
	Amount   kernel.Money
}

// Refund is a successful reversal of a Charge.
type Refund struct {
	ID         string
	ChargeID   string
	Amount     kernel.Money
	RefundedAt time.Time
}

// PaymentGateway takes and returns money.
//
// A declined card is an errs.ExternalServiceError of kind rejected; a card
// that fails format checks is errs.ErrValueIsInvalid.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
	Refund(ctx context.Context, req RefundRequest) (Refund, error)
}
