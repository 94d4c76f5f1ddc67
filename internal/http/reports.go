package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	echo "github.com/labstack/echo/v4"
)

func listDeliveriesHandler(deliveryLog repository.DeliveryLogRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliveryLog == nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "delivery reporting not configured"})
		}

		limit := 50
		offset := 0
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}
		if v := c.QueryParam("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		channelFilter := ""
		if raw := strings.TrimSpace(c.QueryParam("channel")); raw != "" {
			ch, ok := model.ParseChannel(raw)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid channel"})
			}
			channelFilter = ch.String()
		}

		rows, err := deliveryLog.List(
			c.Request().Context(),
			strings.TrimSpace(c.QueryParam("request_id")),
			channelFilter,
			limit,
			offset,
		)
		if err != nil {
			c.Logger().Errorf("clickhouse list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"limit":   limit,
			"offset":  offset,
			"count":   len(rows),
			"results": rows,
		})
	}
}
