package http

import (
	"net/http"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type requestView struct {
	ID            string              `json:"id"`
	Kind          string              `json:"kind"`
	KindLabel     string              `json:"kind_label"`
	Configuration model.Configuration `json:"configuration"`
	CustomerName  string              `json:"customer_name"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Price         string              `json:"price,omitempty"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"status_label"`
	SentAt        *time.Time          `json:"sent_at,omitempty"`
	ReminderTier  int                 `json:"next_reminder_tier,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

func viewOf(m *model.Request) requestView {
	v := requestView{
		ID:            m.ID,
		Kind:          m.Kind.String(),
		KindLabel:     m.Kind.Label(),
		Configuration: m.Configuration,
		CustomerName:  m.CustomerName,
		Email:         m.EmailAddress(),
		Phone:         m.PhoneNumber(),
		Status:        m.Status.String(),
		StatusLabel:   m.Status.Label(),
		ReminderTier:  m.ReminderTier(),
		SentAt:        m.SentAt,
		CreatedAt:     m.CreatedAt,
	}
	if m.Price.Valid {
		v.Price = m.Price.Decimal.StringFixed(2)
	}
	return v
}

func getRequestHandler(requests repository.RequestsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, err := requests.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			log.Errorf("request lookup failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if m == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "request not found"})
		}
		return c.JSON(http.StatusOK, viewOf(m))
	}
}

type statusReq struct {
	Status string `json:"status"`
}

// updateStatusHandler is the operator-facing transition, covering the stages
// after confirmation (site visit, build, completion) and reactivation of
// finished requests back into the pipeline.
func updateStatusHandler(requests repository.RequestsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		var req statusReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		status, ok := model.ParseRequestStatus(req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid status"})
		}

		applied, err := requests.UpdateStatus(c.Request().Context(), id, status)
		if err != nil {
			log.Errorf("status update failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if !applied {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "request not found"})
		}

		return c.JSON(http.StatusOK, map[string]string{
			"id":     id,
			"status": status.String(),
		})
	}
}
