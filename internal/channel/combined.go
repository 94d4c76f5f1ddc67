package channel

import (
	"context"
	"sync"

	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/model"
)

// Combined fans one message out over the requested channels. Only channels
// with a usable destination on the request are invoked; it never invents a
// destination that wasn't supplied. Sends run concurrently and all results
// are joined before returning.
type Combined struct {
	senders map[model.Channel]Sender
}

func NewCombined(senders ...Sender) *Combined {
	m := make(map[model.Channel]Sender, len(senders))
	for _, s := range senders {
		m[s.Channel()] = s
	}
	return &Combined{senders: m}
}

func destinationFor(ch model.Channel, req *model.Request) string {
	switch ch {
	case model.ChannelEmail:
		return req.EmailAddress()
	case model.ChannelWhatsApp:
		return req.PhoneNumber()
	}
	return ""
}

// Send returns one DeliveryResult per invoked channel. An empty slice means
// no requested channel had a usable destination.
func (c *Combined) Send(ctx context.Context, req *model.Request, msg Message, channels []model.Channel) []model.DeliveryResult {
	type target struct {
		sender Sender
		dest   string
	}

	var targets []target
	seen := make(map[model.Channel]bool, len(channels))
	for _, ch := range channels {
		if seen[ch] {
			continue
		}
		seen[ch] = true

		s, ok := c.senders[ch]
		if !ok {
			continue
		}
		dest := destinationFor(ch, req)
		if dest == "" {
			continue
		}
		targets = append(targets, target{sender: s, dest: dest})
	}

	results := make([]model.DeliveryResult, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			results[i] = t.sender.Send(ctx, t.dest, msg)
		}(i, t)
	}
	wg.Wait()

	for _, r := range results {
		outcome := "sent"
		if !r.Sent() {
			outcome = "failed"
		}
		metrics.DeliveriesTotal.WithLabelValues(r.Channel.String(), outcome).Inc()
	}

	return results
}
