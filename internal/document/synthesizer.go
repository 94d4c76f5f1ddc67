// Package document builds the structured quote from a request and its cached
// price, and renders it to an attachment on a best-effort basis.
package document

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/bouwofferte/quote-service/internal/logger"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Synthesizer struct {
	company      model.CompanyBlock
	validityDays int
	renderer     Renderer
	now          func() time.Time
}

func NewSynthesizer(company model.CompanyBlock, validityDays int, renderer Renderer) *Synthesizer {
	if validityDays <= 0 {
		validityDays = 30
	}
	return &Synthesizer{
		company:      company,
		validityDays: validityDays,
		renderer:     renderer,
		now:          time.Now,
	}
}

// Build assembles the structured quote. It is total: every code maps to a
// label (with fallback) and every kind gets at least a generic line set.
func (s *Synthesizer) Build(req *model.Request, price decimal.Decimal) model.QuoteDocument {
	issued := s.now()
	return model.QuoteDocument{
		Number:     req.ID,
		Kind:       req.Kind,
		IssuedAt:   issued,
		ValidUntil: issued.AddDate(0, 0, s.validityDays),
		Company:    s.company,
		Customer: model.CustomerBlock{
			Name:  req.CustomerName,
			Email: req.EmailAddress(),
			Phone: req.PhoneNumber(),
		},
		Lines:      specLines(req.Kind, req.Configuration),
		Price:      price,
		Inclusions: inclusions(req.Kind),
	}
}

// Render produces the attachment for the quote. When the external provider
// fails or is unreachable it falls back to the plain-text rendering: a
// missing PDF must never block delivery.
func (s *Synthesizer) Render(ctx context.Context, doc model.QuoteDocument) *Attachment {
	if s.renderer != nil {
		att, err := s.renderer.Render(ctx, doc)
		if err == nil {
			return att
		}
		metrics.RenderFailuresTotal.Inc()
		logger.Log.Warn("quote render failed, falling back to plain text",
			zap.String("request_id", doc.Number),
			zap.Error(err),
		)
	}
	return &Attachment{
		Filename:    "quote-" + doc.Number + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(PlainText(doc)),
	}
}

func specLines(kind model.RequestKind, cfg model.Configuration) []model.SpecLine {
	var lines []model.SpecLine
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, model.SpecLine{Label: label, Value: value})
		}
	}

	switch kind {
	case model.KindRoofDormer:
		if cfg.WidthCM > 0 {
			add("Width", strconv.Itoa(cfg.WidthCM)+" cm")
		}
		if cfg.RoofPitch != "" {
			add("Roof type", roofPitches.Label(cfg.RoofPitch))
		}
		if cfg.Model != "" {
			add("Model", dormerModels.Label(cfg.Model))
		}
		if cfg.Material != "" {
			add("Material", materials.Label(cfg.Material))
		}
		for _, part := range colorParts {
			if code, ok := cfg.Colors[part]; ok {
				add(colorPartLabels.Label(part), colors.Label(code))
			}
		}
	case model.KindSolarPanel:
		if cfg.PanelCount > 0 {
			add("Number of panels", strconv.Itoa(cfg.PanelCount))
		}
		if cfg.Mounting != "" {
			add("Mounting", mountings.Label(cfg.Mounting))
		}
	default:
		if cfg.WidthCM > 0 {
			add("Surface width", strconv.Itoa(cfg.WidthCM)+" cm")
		}
		if cfg.Material != "" {
			add("Material", materials.Label(cfg.Material))
		}
	}

	if len(cfg.Options) > 0 {
		names := make([]string, 0, len(cfg.Options))
		for _, o := range cfg.Options {
			names = append(names, options.Label(o))
		}
		add("Selected options", strings.Join(names, ", "))
	}
	if cfg.DeliveryWindow != "" {
		add("Desired delivery", deliveryWindows.Label(cfg.DeliveryWindow))
	}

	return lines
}

func inclusions(kind model.RequestKind) []string {
	switch kind {
	case model.KindRoofDormer:
		return []string{
			"Removal and disposal of roofing material",
			"Placement in one working day",
			"HR++ glazing",
			"10-year warranty on construction and finish",
		}
	case model.KindSolarPanel:
		return []string{
			"Full installation and grid registration",
			"Monitoring app setup",
			"12-year product warranty, 25-year yield warranty",
		}
	default:
		return []string{
			"Materials and labour",
			"Site cleanup on completion",
		}
	}
}

var textTmpl = template.Must(template.New("quote.txt").Parse(`{{.Company.Name}}
{{.Company.Address}}
{{.Company.Phone}} | {{.Company.Email}}

QUOTE {{.Number}} - {{.Kind.Label}}
Issued:      {{.IssuedAt.Format "2 January 2006"}}
Valid until: {{.ValidUntil.Format "2 January 2006"}}

For: {{.Customer.Name}}
{{if .Customer.Email}}     {{.Customer.Email}}
{{end}}{{if .Customer.Phone}}     {{.Customer.Phone}}
{{end}}
Specification
-------------
{{range .Lines}}  {{printf "%-22s" .Label}} {{.Value}}
{{end}}
Total (incl. VAT): EUR {{.Price.StringFixed 2}}

Included as standard
--------------------
{{range .Inclusions}}  - {{.}}
{{end}}`))

// PlainText serializes the structured quote as marked-up text, the degraded
// path when binary rendering is unavailable.
func PlainText(doc model.QuoteDocument) string {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, doc); err != nil {
		// template over owned types; only reachable through a programming error
		return fmt.Sprintf("QUOTE %s - total EUR %s", doc.Number, doc.Price.StringFixed(2))
	}
	return buf.String()
}
