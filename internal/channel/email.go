package channel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
)

// EmailSender posts messages to the transactional email provider's HTTP API.
type EmailSender struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

func NewEmailSender(endpoint, apiKey, from string, timeoutMs int) *EmailSender {
	if timeoutMs <= 0 {
		timeoutMs = 5000
	}
	return &EmailSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
	}
}

func (s *EmailSender) Channel() model.Channel { return model.ChannelEmail }

type emailAttachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"` // base64
}

type emailPayload struct {
	From        string            `json:"from"`
	To          string            `json:"to"`
	Subject     string            `json:"subject"`
	TextBody    string            `json:"text_body"`
	Attachments []emailAttachment `json:"attachments,omitempty"`
}

type emailResponse struct {
	MessageID string `json:"message_id"`
}

func (s *EmailSender) Send(ctx context.Context, destination string, msg Message) model.DeliveryResult {
	res := model.DeliveryResult{
		Channel:     model.ChannelEmail,
		Destination: destination,
		At:          time.Now(),
	}
	if destination == "" {
		res.Error = "empty email address"
		return res
	}

	payload := emailPayload{
		From:     s.from,
		To:       destination,
		Subject:  msg.Subject,
		TextBody: msg.Body,
	}
	if msg.Attachment != nil {
		payload.Attachments = []emailAttachment{{
			Name:        msg.Attachment.Filename,
			ContentType: msg.Attachment.ContentType,
			Content:     base64.StdEncoding.EncodeToString(msg.Attachment.Data),
		}}
	}

	id, err := s.post(ctx, payload)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.MessageID = id
	return res
}

func (s *EmailSender) post(ctx context.Context, payload emailPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("email provider status=%d", resp.StatusCode)
	}

	var out emailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("email provider response: %w", err)
	}
	return out.MessageID, nil
}
