// Package channel delivers quote messages over the configured providers.
// Every sender performs exactly one side effect per invocation and reports a
// structured DeliveryResult instead of an error; retries belong to the
// operator, not to the sender.
package channel

import (
	"context"

	"github.com/bouwofferte/quote-service/internal/document"
	"github.com/bouwofferte/quote-service/internal/model"
)

// Message is the channel-agnostic content of one outbound send. Email uses
// Subject/Body and the attachment; messaging channels use ShortBody only.
type Message struct {
	Subject    string
	Body       string
	ShortBody  string
	Attachment *document.Attachment
}

type Sender interface {
	Channel() model.Channel
	Send(ctx context.Context, destination string, msg Message) model.DeliveryResult
}
