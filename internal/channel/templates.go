package channel

import (
	"fmt"
	"time"

	"github.com/bouwofferte/quote-service/internal/document"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

// TemplateContext carries the interpolation values for outbound messages.
type TemplateContext struct {
	CustomerName  string
	KindLabel     string
	Price         string // formatted amount, e.g. "9.230,00"
	ValidUntil    string // formatted date
	CompanyName   string
	CompanyPhone  string
	ConfirmYesURL string
	ConfirmNoURL  string
}

// BuildContext assembles the interpolation values for a request. The
// confirmation links embed the request id as capability token.
func BuildContext(req *model.Request, price decimal.Decimal, validUntil time.Time, companyName, companyPhone, confirmBaseURL string) TemplateContext {
	return TemplateContext{
		CustomerName:  req.CustomerName,
		KindLabel:     req.Kind.Label(),
		Price:         price.StringFixed(2),
		ValidUntil:    validUntil.Format("2 January 2006"),
		CompanyName:   companyName,
		CompanyPhone:  companyPhone,
		ConfirmYesURL: fmt.Sprintf("%s?id=%s&response=yes", confirmBaseURL, req.ID),
		ConfirmNoURL:  fmt.Sprintf("%s?id=%s&response=no", confirmBaseURL, req.ID),
	}
}

// QuoteMessage builds the initial quote delivery for all channels.
func QuoteMessage(tc TemplateContext, att *document.Attachment) Message {
	return Message{
		Subject: fmt.Sprintf("Your %s quote from %s", tc.KindLabel, tc.CompanyName),
		Body: fmt.Sprintf(
			"Dear %s,\n\n"+
				"Thank you for your interest. Attached you will find our quote for your %s: "+
				"EUR %s including VAT, valid until %s.\n\n"+
				"Interested? Let us know:\n"+
				"  Yes, I am interested: %s\n"+
				"  No, not for me: %s\n\n"+
				"Questions? Call us on %s.\n\n"+
				"Kind regards,\n%s",
			tc.CustomerName, tc.KindLabel, tc.Price, tc.ValidUntil,
			tc.ConfirmYesURL, tc.ConfirmNoURL, tc.CompanyPhone, tc.CompanyName,
		),
		ShortBody: fmt.Sprintf(
			"Hi %s! Your %s quote from %s is ready: EUR %s incl. VAT, valid until %s. "+
				"Check your email for the full document, or call us on %s.",
			tc.CustomerName, tc.KindLabel, tc.CompanyName, tc.Price, tc.ValidUntil, tc.CompanyPhone,
		),
		Attachment: att,
	}
}

// ReminderMessage builds the tier-specific reminder. Tone escalates: a
// gentle nudge, then an offer to call, then an expiry notice.
func ReminderMessage(tier int, tc TemplateContext) Message {
	var subject, body, short string

	switch tier {
	case 1:
		subject = fmt.Sprintf("Did you receive our %s quote?", tc.KindLabel)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"A few days ago we sent you our quote for your %s (EUR %s incl. VAT). "+
				"We wanted to make sure it reached you.\n\n"+
				"Interested? Let us know:\n  Yes: %s\n  No: %s\n\n"+
				"Kind regards,\n%s",
			tc.CustomerName, tc.KindLabel, tc.Price,
			tc.ConfirmYesURL, tc.ConfirmNoURL, tc.CompanyName,
		)
		short = fmt.Sprintf(
			"Hi %s, just checking our %s quote (EUR %s) reached you. Questions? We're happy to help!",
			tc.CustomerName, tc.KindLabel, tc.Price,
		)
	case 2:
		subject = fmt.Sprintf("Shall we walk through your %s quote together?", tc.KindLabel)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"Perhaps you still have questions about our %s quote. "+
				"We would be glad to walk through it with you by phone - no strings attached. "+
				"Call us on %s, or let us know and we will call you.\n\n"+
				"  Yes, I am interested: %s\n  No, not for me: %s\n\n"+
				"Kind regards,\n%s",
			tc.CustomerName, tc.KindLabel, tc.CompanyPhone,
			tc.ConfirmYesURL, tc.ConfirmNoURL, tc.CompanyName,
		)
		short = fmt.Sprintf(
			"Hi %s, any questions about your %s quote? Call us on %s, we'd be happy to walk you through it.",
			tc.CustomerName, tc.KindLabel, tc.CompanyPhone,
		)
	default:
		subject = fmt.Sprintf("Your %s quote expires on %s", tc.KindLabel, tc.ValidUntil)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"A final reminder: our %s quote of EUR %s incl. VAT is valid until %s. "+
				"After that date prices and availability may change.\n\n"+
				"Secure your quote:\n  Yes, I am interested: %s\n  No, not for me: %s\n\n"+
				"Kind regards,\n%s",
			tc.CustomerName, tc.KindLabel, tc.Price, tc.ValidUntil,
			tc.ConfirmYesURL, tc.ConfirmNoURL, tc.CompanyName,
		)
		short = fmt.Sprintf(
			"Hi %s, your %s quote (EUR %s) is valid until %s. Let us know if you'd like to go ahead!",
			tc.CustomerName, tc.KindLabel, tc.Price, tc.ValidUntil,
		)
	}

	return Message{Subject: subject, Body: body, ShortBody: short}
}
