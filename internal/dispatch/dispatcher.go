// Package dispatch orchestrates sending a quote for a request: price lookup
// or computation, document synthesis, channel fan-out and the resulting
// status transition.
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/document"
	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/logger"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/notify"
	"github.com/bouwofferte/quote-service/internal/pricing"
	"github.com/bouwofferte/quote-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNotFound         = errors.New("request not found")
	ErrNoDestination    = errors.New("request has no deliverable destination")
	ErrPriceUnavailable = errors.New("no automatic price for this configuration")
	ErrTerminalStatus   = errors.New("request already past the quote stage")
)

// QuoteSender fans a message out over the requested channels.
type QuoteSender interface {
	Send(ctx context.Context, req *model.Request, msg channel.Message, channels []model.Channel) []model.DeliveryResult
}

// Outcome summarizes one dispatch attempt.
type Outcome struct {
	RequestID string                 `json:"request_id"`
	Outcome   model.DispatchOutcome  `json:"outcome"`
	Price     decimal.Decimal        `json:"price"`
	Resend    bool                   `json:"resend"`
	Results   []model.DeliveryResult `json:"results"`
}

type Dispatcher struct {
	requests repository.RequestsRepository
	pricing  repository.PricingConfigRepository
	synth    *document.Synthesizer
	senders  QuoteSender
	ops      notify.OpsNotifier
	events   events.Publisher
	dlog     repository.DeliveryLogRepository

	companyName    string
	companyPhone   string
	confirmBaseURL string

	now func() time.Time
}

func NewDispatcher(
	requests repository.RequestsRepository,
	pricingCfg repository.PricingConfigRepository,
	synth *document.Synthesizer,
	senders QuoteSender,
	ops notify.OpsNotifier,
	pub events.Publisher,
	dlog repository.DeliveryLogRepository,
	companyName, companyPhone, confirmBaseURL string,
) *Dispatcher {
	return &Dispatcher{
		requests:       requests,
		pricing:        pricingCfg,
		synth:          synth,
		senders:        senders,
		ops:            ops,
		events:         pub,
		dlog:           dlog,
		companyName:    companyName,
		companyPhone:   companyPhone,
		confirmBaseURL: confirmBaseURL,
		now:            time.Now,
	}
}

// Dispatch prices (or re-reads the cached price of) the request, builds the
// quote document and sends it over the requested channels. Empty channels
// means all channels with a destination on the request. With reprice set the
// cached price is recomputed from the latest pricing snapshot first.
//
// Only the first successful dispatch advances the request to quote_sent;
// later calls are resends and leave sent_at untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, id string, channels []model.Channel, reprice bool) (*Outcome, error) {
	req, err := d.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status.Terminal() {
		return nil, ErrTerminalStatus
	}
	if !req.Deliverable() {
		return nil, ErrNoDestination
	}
	if len(channels) == 0 {
		channels = model.AllChannels()
	}

	price, err := d.resolvePrice(ctx, req, reprice)
	if err != nil {
		return nil, err
	}

	doc := d.synth.Build(req, price)
	att := d.synth.Render(ctx, doc)

	tc := channel.BuildContext(req, price, doc.ValidUntil, d.companyName, d.companyPhone, d.confirmBaseURL)
	results := d.senders.Send(ctx, req, channel.QuoteMessage(tc, att), channels)

	outcome := model.ComputeOutcome(results)
	metrics.DispatchesTotal.WithLabelValues(outcome.String()).Inc()

	resend := req.SentAt != nil
	if outcome != model.OutcomeTotalFailure {
		applied, err := d.requests.MarkQuoteSent(ctx, id, d.now())
		if err != nil {
			logger.Log.Error("marking quote as sent failed",
				zap.String("request_id", id), zap.Error(err))
		} else if applied {
			d.publish(ctx, events.Event{Type: events.TypeQuoteSent, RequestID: req.ID, Kind: req.Kind.String()})
		}
	}

	d.notifyOps(ctx, req, price, outcome)
	d.logDeliveries(ctx, req, "quote", results)

	logger.Log.Info("quote dispatched",
		zap.String("request_id", req.ID),
		zap.String("kind", req.Kind.String()),
		zap.String("outcome", outcome.String()),
		zap.Bool("resend", resend),
	)

	return &Outcome{
		RequestID: req.ID,
		Outcome:   outcome,
		Price:     price,
		Resend:    resend,
		Results:   results,
	}, nil
}

// resolvePrice returns the price to quote. The cached value wins unless a
// reprice is requested; on first pricing the conditional write arbitrates
// concurrent dispatches and the row is re-read so both see the same amount.
func (d *Dispatcher) resolvePrice(ctx context.Context, req *model.Request, reprice bool) (decimal.Decimal, error) {
	if reprice {
		price, err := d.computePrice(ctx, req)
		if err != nil {
			return decimal.Zero, err
		}
		if err := d.requests.SetPrice(ctx, req.ID, price); err != nil {
			return decimal.Zero, err
		}
		req.Price = decimal.NullDecimal{Decimal: price, Valid: true}
		return price, nil
	}

	if req.Price.Valid {
		return req.Price.Decimal, nil
	}

	price, err := d.computePrice(ctx, req)
	if err != nil {
		return decimal.Zero, err
	}
	if err := d.requests.SetPriceIfUnset(ctx, req.ID, price); err != nil {
		return decimal.Zero, err
	}

	fresh, err := d.requests.Get(ctx, req.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if fresh == nil || !fresh.Price.Valid {
		return decimal.Zero, ErrPriceUnavailable
	}
	req.Price = fresh.Price
	return fresh.Price.Decimal, nil
}

func (d *Dispatcher) computePrice(ctx context.Context, req *model.Request) (decimal.Decimal, error) {
	snap, err := d.pricing.Latest(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	price := pricing.Price(req.Kind, req.Configuration, snap)
	if price.IsZero() {
		return decimal.Zero, ErrPriceUnavailable
	}
	return price, nil
}

func (d *Dispatcher) publish(ctx context.Context, e events.Event) {
	if d.events == nil {
		return
	}
	if err := d.events.Publish(ctx, e); err != nil {
		logger.Log.Warn("lifecycle event publish failed",
			zap.String("type", e.Type), zap.String("request_id", e.RequestID), zap.Error(err))
	}
}

func (d *Dispatcher) notifyOps(ctx context.Context, req *model.Request, price decimal.Decimal, outcome model.DispatchOutcome) {
	if d.ops == nil {
		return
	}
	if err := d.ops.QuoteDispatched(ctx, req, price, outcome); err != nil {
		logger.Log.Warn("ops notification failed",
			zap.String("request_id", req.ID), zap.Error(err))
	}
}

func (d *Dispatcher) logDeliveries(ctx context.Context, req *model.Request, stage string, results []model.DeliveryResult) {
	if d.dlog == nil || len(results) == 0 {
		return
	}
	rows := make([]repository.DeliveryLogRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, repository.DeliveryLogRow{
			RequestID:   req.ID,
			Kind:        req.Kind.String(),
			Stage:       stage,
			Channel:     r.Channel.String(),
			Destination: r.Destination,
			MessageID:   r.MessageID,
			Error:       r.Error,
			CreatedAt:   r.At,
		})
	}
	if err := d.dlog.Append(ctx, rows); err != nil {
		logger.Log.Warn("delivery log append failed",
			zap.String("request_id", req.ID), zap.Error(err))
	}
}
