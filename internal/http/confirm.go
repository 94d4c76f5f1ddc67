package http

import (
	"fmt"
	"net/http"

	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const confirmPage = `<!doctype html><html><body style="font-family:sans-serif;max-width:32em;margin:4em auto"><h2>%s</h2><p>%s</p></body></html>`

// page renders the minimal customer-facing result page.
func page(c echo.Context, code int, title, body string) error {
	return c.HTML(code, fmt.Sprintf(confirmPage, title, body))
}

// confirmHandler processes the yes/no links embedded in quote messages. The
// request id doubles as capability token; the link is public and carries no
// API key.
//
// The transition only applies while the request still sits in quote_sent, so
// a stale link can never overturn a decision an operator already recorded.
func confirmHandler(requests repository.RequestsRepository, pub events.Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.QueryParam("id")
		response := c.QueryParam("response")

		var target model.RequestStatus
		var eventType string
		switch response {
		case "yes":
			target = model.StatusInterestConfirmed
			eventType = events.TypeInterestConfirmed
		case "no":
			target = model.StatusInterestDeclined
			eventType = events.TypeInterestDeclined
		default:
			return page(c, http.StatusBadRequest, "Invalid link",
				"This confirmation link is not valid. Please use the link from your quote message.")
		}
		if id == "" {
			return page(c, http.StatusBadRequest, "Invalid link",
				"This confirmation link is not valid. Please use the link from your quote message.")
		}

		req, err := requests.Get(c.Request().Context(), id)
		if err != nil {
			log.Errorf("confirm lookup failed: %v", err)

			return page(c, http.StatusInternalServerError, "Something went wrong",
				"We could not process your response right now. Please try again later.")
		}
		if req == nil {
			return page(c, http.StatusNotFound, "Unknown quote",
				"We could not find a quote for this link.")
		}

		applied, err := requests.Confirm(c.Request().Context(), id, target)
		if err != nil {
			log.Errorf("confirm update failed: %v", err)

			return page(c, http.StatusInternalServerError, "Something went wrong",
				"We could not process your response right now. Please try again later.")
		}

		if !applied {
			// repeated click on the same link is fine; a different answer
			// after the fact is not
			if req.Status == target {
				return thanks(c, target)
			}
			if req.SentAt == nil {
				return page(c, http.StatusConflict, "Quote not sent yet",
					"Your quote is still being prepared. You will be able to respond once it has been sent to you.")
			}
			return page(c, http.StatusConflict, "Already handled",
				"This quote has already been processed. Contact us if anything should change.")
		}

		if pub != nil {
			if err := pub.Publish(c.Request().Context(), events.Event{
				Type:      eventType,
				RequestID: req.ID,
				Kind:      req.Kind.String(),
			}); err != nil {
				log.Warnf("lifecycle event publish failed: %v", err)
			}
		}

		log.Infof("interest response recorded: id=%s response=%s", id, response)

		return thanks(c, target)
	}
}

func thanks(c echo.Context, target model.RequestStatus) error {
	if target == model.StatusInterestConfirmed {
		return page(c, http.StatusOK, "Thank you!",
			"Great to hear you are interested. We will contact you shortly to schedule the next step.")
	}
	return page(c, http.StatusOK, "Thank you for letting us know",
		"We have recorded that the quote is not what you are looking for. You will receive no further reminders.")
}
