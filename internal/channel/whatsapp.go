package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
)

// WhatsAppSender posts short text messages to the messaging provider's
// Business API. Attachments are not supported on this channel.
type WhatsAppSender struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewWhatsAppSender(endpoint, token string, timeoutMs int) *WhatsAppSender {
	if timeoutMs <= 0 {
		timeoutMs = 5000
	}
	return &WhatsAppSender{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
	}
}

func (s *WhatsAppSender) Channel() model.Channel { return model.ChannelWhatsApp }

type waPayload struct {
	To   string `json:"to"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

type waResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (s *WhatsAppSender) Send(ctx context.Context, destination string, msg Message) model.DeliveryResult {
	res := model.DeliveryResult{
		Channel:     model.ChannelWhatsApp,
		Destination: destination,
		At:          time.Now(),
	}
	if destination == "" {
		res.Error = "empty phone number"
		return res
	}

	payload := waPayload{To: destination, Type: "text"}
	payload.Text.Body = msg.ShortBody

	b, err := json.Marshal(payload)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		res.Error = fmt.Sprintf("whatsapp provider status=%d", resp.StatusCode)
		return res
	}

	var out waResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		res.Error = fmt.Sprintf("whatsapp provider response: %v", err)
		return res
	}
	if len(out.Messages) > 0 {
		res.MessageID = out.Messages[0].ID
	}
	return res
}
