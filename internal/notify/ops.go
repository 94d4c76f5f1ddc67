// Package notify delivers internal notifications to the operations team.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

// OpsNotifier informs the operations team about dispatched quotes. Callers
// treat failures as best-effort: log and move on.
type OpsNotifier interface {
	QuoteDispatched(ctx context.Context, req *model.Request, price decimal.Decimal, outcome model.DispatchOutcome) error
}

// EmailOpsNotifier sends the summary to a fixed operations address through
// the regular email channel.
type EmailOpsNotifier struct {
	sender  channel.Sender
	address string
}

func NewEmailOpsNotifier(sender channel.Sender, address string) *EmailOpsNotifier {
	return &EmailOpsNotifier{sender: sender, address: address}
}

var _ OpsNotifier = (*EmailOpsNotifier)(nil)

func (n *EmailOpsNotifier) QuoteDispatched(ctx context.Context, req *model.Request, price decimal.Decimal, outcome model.DispatchOutcome) error {
	if n.address == "" {
		return nil
	}

	msg := channel.Message{
		Subject: fmt.Sprintf("[quote] %s dispatched: %s (%s)", req.Kind.Label(), req.ID, outcome),
		Body: fmt.Sprintf(
			"Request %s\nKind: %s\nCustomer: %s\nEmail: %s\nPhone: %s\nPrice: EUR %s\nOutcome: %s\n",
			req.ID, req.Kind.Label(), req.CustomerName,
			req.EmailAddress(), req.PhoneNumber(),
			price.StringFixed(2), outcome,
		),
	}

	res := n.sender.Send(ctx, n.address, msg)
	if !res.Sent() {
		return errors.New(res.Error)
	}
	return nil
}
