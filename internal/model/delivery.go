package model

import (
	"strings"
	"time"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

func (c Channel) String() string { return string(c) }

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelWhatsApp
}

// ParseChannel normalizes input. Returns (value, true) if valid.
func ParseChannel(s string) (Channel, bool) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// AllChannels in stable order.
func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelWhatsApp}
}

// DeliveryResult is the per-channel outcome of a single send attempt.
// A result with an empty Error is a success carrying the provider message id.
type DeliveryResult struct {
	Channel     Channel   `json:"channel"`
	Destination string    `json:"destination"`
	MessageID   string    `json:"message_id,omitempty"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

func (r DeliveryResult) Sent() bool { return r.Error == "" }

type DispatchOutcome string

const (
	OutcomeSuccess        DispatchOutcome = "success"
	OutcomePartialFailure DispatchOutcome = "partial_failure"
	OutcomeTotalFailure   DispatchOutcome = "total_failure"
)

func (o DispatchOutcome) String() string { return string(o) }

// ComputeOutcome folds per-channel results into the overall dispatch outcome.
// Zero results means zero usable destinations, which counts as total failure.
func ComputeOutcome(results []DeliveryResult) DispatchOutcome {
	var sent, failed int
	for _, r := range results {
		if r.Sent() {
			sent++
		} else {
			failed++
		}
	}
	switch {
	case sent > 0 && failed == 0:
		return OutcomeSuccess
	case sent > 0:
		return OutcomePartialFailure
	default:
		return OutcomeTotalFailure
	}
}
