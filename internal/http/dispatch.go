package http

import (
	"errors"
	"net/http"

	"github.com/bouwofferte/quote-service/internal/dispatch"
	"github.com/bouwofferte/quote-service/internal/model"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type dispatchReq struct {
	Channels []string `json:"channels"` // empty means every channel with a destination
	Reprice  bool     `json:"reprice"`
}

func dispatchHandler(d *dispatch.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if id == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing id"})
		}

		var req dispatchReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		var channels []model.Channel
		for _, raw := range req.Channels {
			ch, ok := model.ParseChannel(raw)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid channel: " + raw})
			}
			channels = append(channels, ch)
		}

		out, err := d.Dispatch(c.Request().Context(), id, channels, req.Reprice)
		if err != nil {
			switch {
			case errors.Is(err, dispatch.ErrNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "request not found"})
			case errors.Is(err, dispatch.ErrNoDestination):
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "no_destination"})
			case errors.Is(err, dispatch.ErrPriceUnavailable):
				return c.JSON(http.StatusUnprocessableEntity, map[string]any{
					"error":       "price_on_request",
					"description": "this configuration is quoted manually, no automatic dispatch",
				})
			case errors.Is(err, dispatch.ErrTerminalStatus):
				return c.JSON(http.StatusConflict, map[string]string{"error": "request already decided"})
			}

			log.Errorf("dispatch failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "dispatch failed"})
		}

		return c.JSON(http.StatusOK, out)
	}
}
