package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	"github.com/bouwofferte/quote-service/internal/util"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type createReq struct {
	Kind          string              `json:"kind"`
	Configuration model.Configuration `json:"configuration"`
	CustomerName  string              `json:"customer_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
}

func createRequestHandler(requests repository.RequestsRepository, pub events.Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		// Normalize
		req.CustomerName = strings.TrimSpace(req.CustomerName)
		req.Email = strings.TrimSpace(req.Email)
		req.Phone = util.NormalizePhone(strings.TrimSpace(req.Phone))

		// Basic validation
		kind, ok := model.ParseRequestKind(req.Kind)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid kind"})
		}
		if req.CustomerName == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "customer_name required"})
		}
		if utf8.RuneCountInString(req.CustomerName) > 200 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "customer_name too long"})
		}
		if req.Email == "" && req.Phone == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email or phone required"})
		}
		if req.Email != "" && !strings.Contains(req.Email, "@") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid email"})
		}

		m := model.Request{
			ID:            util.NewID(),
			Kind:          kind,
			Configuration: req.Configuration,
			CustomerName:  req.CustomerName,
			Status:        model.StatusNew,
		}
		if req.Email != "" {
			m.Email = &req.Email
		}
		if req.Phone != "" {
			m.Phone = &req.Phone
		}

		if err := requests.Insert(c.Request().Context(), m); err != nil {
			log.Errorf("request insert failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		if pub != nil {
			if err := pub.Publish(c.Request().Context(), events.Event{
				Type:      events.TypeRequestCreated,
				RequestID: m.ID,
				Kind:      kind.String(),
			}); err != nil {
				log.Warnf("lifecycle event publish failed: %v", err)
			}
		}

		return c.JSON(http.StatusCreated, map[string]any{
			"id":     m.ID,
			"kind":   kind.String(),
			"status": m.Status.String(),
		})
	}
}
