package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, model.QuoteDocument) (*Attachment, error) {
	return nil, errors.New("provider down")
}

type fixedRenderer struct{ att *Attachment }

func (r fixedRenderer) Render(context.Context, model.QuoteDocument) (*Attachment, error) {
	return r.att, nil
}

func testRequest() *model.Request {
	email := "jdv@example.test"
	return &model.Request{
		ID:   "01REQ",
		Kind: model.KindRoofDormer,
		Configuration: model.Configuration{
			WidthCM:   250,
			RoofPitch: "sloped_low",
			Model:     "modern",
			Material:  "wood",
			Colors:    map[string]string{"frame": "ral9010"},
			Options:   []string{"sun_shade"},
		},
		CustomerName: "J. de Vries",
		Email:        &email,
		Status:       model.StatusNew,
	}
}

func TestSynthesizer_Build(t *testing.T) {
	company := model.CompanyBlock{Name: "Bouwofferte B.V.", Phone: "085-1234567"}
	s := NewSynthesizer(company, 30, nil)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	doc := s.Build(testRequest(), decimal.NewFromInt(9230))

	if doc.Number != "01REQ" {
		t.Errorf("number = %s, want request id", doc.Number)
	}
	if got := doc.ValidUntil.Sub(doc.IssuedAt); got != 30*24*time.Hour {
		t.Errorf("validity = %s, want 30 days", got)
	}
	if !doc.Price.Equal(decimal.NewFromInt(9230)) {
		t.Errorf("price = %s, want 9230", doc.Price)
	}
	if doc.Customer.Name != "J. de Vries" || doc.Customer.Email != "jdv@example.test" {
		t.Errorf("customer block = %+v", doc.Customer)
	}
	if len(doc.Lines) == 0 {
		t.Fatal("no spec lines")
	}

	byLabel := map[string]string{}
	for _, l := range doc.Lines {
		byLabel[l.Label] = l.Value
	}
	if byLabel["Width"] != "250 cm" {
		t.Errorf("width line = %q", byLabel["Width"])
	}
	if byLabel["Material"] != "Wood" {
		t.Errorf("material line = %q", byLabel["Material"])
	}
	if byLabel["Frame color"] != "Pure white (RAL 9010)" {
		t.Errorf("frame color line = %q", byLabel["Frame color"])
	}
	if len(doc.Inclusions) == 0 {
		t.Error("no inclusions")
	}
}

func TestSynthesizer_BuildUnknownCodesFallBack(t *testing.T) {
	s := NewSynthesizer(model.CompanyBlock{Name: "X"}, 30, nil)

	req := testRequest()
	req.Configuration.Material = "titanium"
	req.Configuration.Options = []string{"teleporter"}

	doc := s.Build(req, decimal.NewFromInt(100))

	var material, opts string
	for _, l := range doc.Lines {
		switch l.Label {
		case "Material":
			material = l.Value
		case "Selected options":
			opts = l.Value
		}
	}
	if material != "Standard finish" {
		t.Errorf("unknown material = %q, want fallback", material)
	}
	if opts != "Additional option" {
		t.Errorf("unknown option = %q, want fallback", opts)
	}
}

func TestSynthesizer_RenderFallsBackToPlainText(t *testing.T) {
	s := NewSynthesizer(model.CompanyBlock{Name: "Bouwofferte B.V."}, 30, failingRenderer{})
	doc := s.Build(testRequest(), decimal.NewFromInt(9230))

	att := s.Render(context.Background(), doc)
	if att == nil {
		t.Fatal("no attachment")
	}
	if !strings.HasSuffix(att.Filename, ".txt") {
		t.Errorf("fallback filename = %s, want .txt", att.Filename)
	}
	if !strings.Contains(string(att.Data), "9230.00") {
		t.Errorf("fallback text missing total: %s", att.Data)
	}
}

func TestSynthesizer_RenderUsesProviderResult(t *testing.T) {
	want := &Attachment{Filename: "quote-01REQ.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	s := NewSynthesizer(model.CompanyBlock{Name: "X"}, 30, fixedRenderer{att: want})

	att := s.Render(context.Background(), s.Build(testRequest(), decimal.NewFromInt(100)))
	if att != want {
		t.Errorf("attachment = %+v, want provider result", att)
	}
}

func TestPlainTextContainsDocumentSections(t *testing.T) {
	s := NewSynthesizer(model.CompanyBlock{Name: "Bouwofferte B.V.", Address: "Dam 1, Amsterdam"}, 30, nil)
	txt := PlainText(s.Build(testRequest(), decimal.NewFromInt(9230)))

	for _, want := range []string{"Bouwofferte B.V.", "QUOTE 01REQ", "Roof dormer", "Specification", "EUR 9230.00", "Included as standard"} {
		if !strings.Contains(txt, want) {
			t.Errorf("plain text missing %q", want)
		}
	}
}
