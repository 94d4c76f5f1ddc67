// Package nurture runs the reminder follow-up loop for quotes that were sent
// but never answered. Three reminder tiers with escalating tone go out at
// fixed offsets from the send time; each tier is recorded at most once.
package nurture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/config"
	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/logger"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	"go.uber.org/zap"
)

const batchSize = 100

// Sender fans a message out over the requested channels.
type Sender interface {
	Send(ctx context.Context, req *model.Request, msg channel.Message, channels []model.Channel) []model.DeliveryResult
}

type Scheduler struct {
	requests repository.RequestsRepository
	senders  Sender
	events   events.Publisher
	dlog     repository.DeliveryLogRepository
	cfg      config.NurtureConfig

	validityDays   int
	companyName    string
	companyPhone   string
	confirmBaseURL string

	now func() time.Time
}

func NewScheduler(
	requests repository.RequestsRepository,
	senders Sender,
	pub events.Publisher,
	dlog repository.DeliveryLogRepository,
	cfg config.NurtureConfig,
	validityDays int,
	companyName, companyPhone, confirmBaseURL string,
) *Scheduler {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Tier1After <= 0 {
		cfg.Tier1After = 48 * time.Hour
	}
	if cfg.Tier2After <= 0 {
		cfg.Tier2After = 120 * time.Hour
	}
	if cfg.Tier3After <= 0 {
		cfg.Tier3After = 168 * time.Hour
	}
	if validityDays <= 0 {
		validityDays = 30
	}
	return &Scheduler{
		requests:       requests,
		senders:        senders,
		events:         pub,
		dlog:           dlog,
		cfg:            cfg,
		validityDays:   validityDays,
		companyName:    companyName,
		companyPhone:   companyPhone,
		confirmBaseURL: confirmBaseURL,
		now:            time.Now,
	}
}

// Run executes one pass immediately, then every interval until the context is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Log.Info("nurture scheduler started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("workers", s.cfg.Workers),
	)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("nurture scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce processes every due reminder tier. Tiers run highest first so a
// request claimed for one tier in this pass cannot also qualify for the next
// tier within the same pass.
func (s *Scheduler) RunOnce(ctx context.Context) {
	offsets := [...]time.Duration{s.cfg.Tier1After, s.cfg.Tier2After, s.cfg.Tier3After}

	for tier := 3; tier >= 1; tier-- {
		if err := s.runTier(ctx, tier, offsets[tier-1]); err != nil {
			logger.Log.Error("reminder tier pass failed",
				zap.Int("tier", tier), zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Scheduler) runTier(ctx context.Context, tier int, after time.Duration) error {
	if after <= 0 {
		return nil
	}
	cutoff := s.now().Add(-after)

	due, err := s.requests.ListReminderEligible(ctx, tier, cutoff, batchSize)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	logger.Log.Info("processing reminders",
		zap.Int("tier", tier), zap.Int("count", len(due)))

	sem := make(chan struct{}, s.cfg.Workers)
	var wg sync.WaitGroup
	for i := range due {
		req := due[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.processOne(ctx, &req, tier)
		}()
	}
	wg.Wait()
	return nil
}

func (s *Scheduler) processOne(ctx context.Context, req *model.Request, tier int) {
	tierLabel := fmt.Sprintf("%d", tier)

	if !req.Price.Valid {
		// quote_sent without a price should not exist; skip rather than
		// send a reminder quoting EUR 0
		logger.Log.Warn("reminder skipped: request has no cached price",
			zap.String("request_id", req.ID), zap.Int("tier", tier))
		metrics.RemindersTotal.WithLabelValues(tierLabel, "skipped").Inc()
		return
	}

	validUntil := s.validUntil(req)
	tc := channel.BuildContext(req, req.Price.Decimal, validUntil, s.companyName, s.companyPhone, s.confirmBaseURL)
	msg := channel.ReminderMessage(tier, tc)

	results := s.senders.Send(ctx, req, msg, model.AllChannels())
	outcome := model.ComputeOutcome(results)

	s.logDeliveries(ctx, req, tier, results)

	if outcome == model.OutcomeTotalFailure {
		metrics.RemindersTotal.WithLabelValues(tierLabel, "failed").Inc()
		logger.Log.Warn("reminder delivery failed on all channels",
			zap.String("request_id", req.ID), zap.Int("tier", tier))
		return
	}

	claimed, err := s.requests.ClaimReminder(ctx, req.ID, tier, s.now())
	if err != nil {
		metrics.RemindersTotal.WithLabelValues(tierLabel, "failed").Inc()
		logger.Log.Error("reminder claim failed",
			zap.String("request_id", req.ID), zap.Int("tier", tier), zap.Error(err))
		return
	}
	if !claimed {
		// another run sent this tier between our list and our claim; the
		// customer may receive a duplicate
		metrics.ReminderClaimLostTotal.Inc()
		logger.Log.Warn("reminder claim lost after send",
			zap.String("request_id", req.ID), zap.Int("tier", tier))
		return
	}

	metrics.RemindersTotal.WithLabelValues(tierLabel, "sent").Inc()
	s.publish(ctx, events.Event{
		Type:      events.TypeReminderSent,
		RequestID: req.ID,
		Kind:      req.Kind.String(),
		Tier:      tier,
	})

	logger.Log.Info("reminder sent",
		zap.String("request_id", req.ID),
		zap.Int("tier", tier),
		zap.String("outcome", outcome.String()),
	)
}

// validUntil derives the quote expiry from the send time, matching the date
// printed on the original document.
func (s *Scheduler) validUntil(req *model.Request) time.Time {
	base := req.CreatedAt
	if req.SentAt != nil {
		base = *req.SentAt
	}
	return base.AddDate(0, 0, s.validityDays)
}

func (s *Scheduler) publish(ctx context.Context, e events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		logger.Log.Warn("lifecycle event publish failed",
			zap.String("type", e.Type), zap.String("request_id", e.RequestID), zap.Error(err))
	}
}

func (s *Scheduler) logDeliveries(ctx context.Context, req *model.Request, tier int, results []model.DeliveryResult) {
	if s.dlog == nil || len(results) == 0 {
		return
	}
	stage := fmt.Sprintf("reminder_%d", tier)
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
	if err := s.dlog.Append(ctx, rows); err != nil {
		logger.Log.Warn("delivery log append failed",
			zap.String("request_id", req.ID), zap.Error(err))
	}
}
