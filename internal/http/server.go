package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/config"
	"github.com/bouwofferte/quote-service/internal/dispatch"
	"github.com/bouwofferte/quote-service/internal/document"
	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/http/middleware"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/notify"
	"github.com/bouwofferte/quote-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB, clickhouseDB *sqlx.DB, rds *redis.Client, pub events.Publisher) *Server {
	// repos (MySQL)
	requestsRepo := repository.NewRequestsRepository(mysqlDB)
	pricingRepo := repository.NewPricingConfigRepository(mysqlDB)

	// repos (ClickHouse)
	var deliveryLog repository.DeliveryLogRepository
	if clickhouseDB != nil {
		deliveryLog = repository.NewDeliveryLogRepository(clickhouseDB)
	}

	// channels
	emailSender := channel.NewEmailSender(cfg.Email.Endpoint, cfg.Email.APIKey, cfg.Email.From, cfg.Email.TimeoutMs)
	waSender := channel.NewWhatsAppSender(cfg.WhatsApp.Endpoint, cfg.WhatsApp.Token, cfg.WhatsApp.TimeoutMs)
	senders := channel.NewCombined(emailSender, waSender)

	// document pipeline
	var renderer document.Renderer
	if cfg.Render.Endpoint != "" {
		renderer = document.NewHTTPRenderer(
			cfg.Render.Endpoint,
			cfg.Render.TimeoutMs,
			cfg.Render.Breaker.FailThreshold,
			cfg.Render.Breaker.OpenForMs,
		)
	}
	synth := document.NewSynthesizer(model.CompanyBlock{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		Website: cfg.Company.Website,
	}, cfg.Quote.ValidityDays, renderer)

	ops := notify.NewEmailOpsNotifier(emailSender, cfg.Ops.Email)

	dispatcher := dispatch.NewDispatcher(
		requestsRepo,
		pricingRepo,
		synth,
		senders,
		ops,
		pub,
		deliveryLog,
		cfg.Company.Name,
		cfg.Company.Phone,
		cfg.Quote.ConfirmBaseURL,
	)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.APIKeys)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:confirm:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// public: the link embedded in quote emails, no API key
	e.GET("/v1/confirm", confirmHandler(requestsRepo, pub), rlMW)

	// routes
	v1 := e.Group("/v1", authMW)
	v1.POST("/requests", createRequestHandler(requestsRepo, pub), rlMW)
	v1.GET("/requests/:id", getRequestHandler(requestsRepo))
	v1.POST("/requests/:id/dispatch", dispatchHandler(dispatcher))
	v1.PATCH("/requests/:id/status", updateStatusHandler(requestsRepo))
	v1.GET("/reports/deliveries", listDeliveriesHandler(deliveryLog))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
