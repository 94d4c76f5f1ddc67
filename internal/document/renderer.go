package document

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
)

// Attachment is a rendered quote ready to hang off an outbound email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Renderer turns a structured quote into a binary document. The provider
// may be unavailable; callers treat rendering as best-effort.
type Renderer interface {
	Render(ctx context.Context, doc model.QuoteDocument) (*Attachment, error)
}

var ErrRenderUnavailable = fmt.Errorf("render provider unavailable")

// HTTPRenderer posts the quote as HTML to an external conversion service
// (Gotenberg-style) and gets PDF bytes back. A breaker keeps a dead
// provider from slowing every dispatch down to its timeout.
type HTTPRenderer struct {
	endpoint string
	client   *http.Client
	br       *MicroBreaker
}

func NewHTTPRenderer(endpoint string, timeoutMs, failThreshold, openForMs int) *HTTPRenderer {
	if timeoutMs <= 0 {
		timeoutMs = 8000
	}
	return &HTTPRenderer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:       NewMicroBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, doc model.QuoteDocument) (*Attachment, error) {
	if !r.br.TryAcquire() {
		return nil, ErrRenderUnavailable
	}

	html, err := renderHTML(doc)
	if err != nil {
		r.br.OnSuccess() // template failure is ours, not the provider's
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(html))
	if err != nil {
		r.br.OnFailure()
		return nil, err
	}
	req.Header.Set("Content-Type", "text/html")

	res, err := r.client.Do(req)
	if err != nil {
		r.br.OnFailure()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		r.br.OnFailure()
		return nil, fmt.Errorf("render provider status=%d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, 16<<20))
	if err != nil {
		r.br.OnFailure()
		return nil, err
	}

	r.br.OnSuccess()
	return &Attachment{
		Filename:    "quote-" + doc.Number + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

var htmlTmpl = template.Must(template.New("quote").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Quote {{.Number}}</title></head>
<body>
<h1>{{.Company.Name}}</h1>
<p>{{.Company.Address}}<br>{{.Company.Phone}} &middot; {{.Company.Email}}</p>
<h2>Quote {{.Number}} &mdash; {{.Kind.Label}}</h2>
<p>Issued {{.IssuedAt.Format "2 January 2006"}}, valid until {{.ValidUntil.Format "2 January 2006"}}</p>
<h3>{{.Customer.Name}}</h3>
<p>{{if .Customer.Email}}{{.Customer.Email}}<br>{{end}}{{if .Customer.Phone}}{{.Customer.Phone}}{{end}}</p>
<table>
{{range .Lines}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
<p><strong>Total: &euro; {{.Price.StringFixed 2}}</strong> (incl. VAT)</p>
<h4>Included as standard</h4>
<ul>{{range .Inclusions}}<li>{{.}}</li>{{end}}</ul>
</body></html>`))

func renderHTML(doc model.QuoteDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
