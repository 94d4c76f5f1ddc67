package worker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/config"
	"github.com/bouwofferte/quote-service/internal/db"
	"github.com/bouwofferte/quote-service/internal/events"
	"github.com/bouwofferte/quote-service/internal/logger"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"github.com/bouwofferte/quote-service/internal/nurture"
	"github.com/bouwofferte/quote-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var nurtureCmd = &cobra.Command{
	Use:   "nurture",
	Short: "Run the reminder follow-up loop",
	RunE:  runNurture,
}

func runNurture(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// the worker has no API server, so the counters get their own listener
	if cfg.Nurture.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Nurture.MetricsAddr, mux); err != nil {
				log.Printf("metrics listener exited: %v", err)
			}
		}()
	}

	dbx, err := db.NewMySQLConnection(cfg.MySQL)
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	defer dbx.Close()

	requestsRepo := repository.NewRequestsRepository(dbx)

	var deliveryLog repository.DeliveryLogRepository
	if cfg.ClickHouse.DSN != "" {
		chDB, err := db.NewClickHouseConnection(cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse connect: %w", err)
		}
		defer func() { _ = chDB.Close() }()
		deliveryLog = repository.NewDeliveryLogRepository(chDB)
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = kp.Close() }()
		pub = kp
	}

	senders := channel.NewCombined(
		channel.NewEmailSender(cfg.Email.Endpoint, cfg.Email.APIKey, cfg.Email.From, cfg.Email.TimeoutMs),
		channel.NewWhatsAppSender(cfg.WhatsApp.Endpoint, cfg.WhatsApp.Token, cfg.WhatsApp.TimeoutMs),
	)

	sched := nurture.NewScheduler(
		requestsRepo,
		senders,
		pub,
		deliveryLog,
		cfg.Nurture,
		cfg.Quote.ValidityDays,
		cfg.Company.Name,
		cfg.Company.Phone,
		cfg.Quote.ConfirmBaseURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf(">> nurture worker started interval=%s workers=%d", cfg.Nurture.Interval, cfg.Nurture.Workers)

	sched.Run(ctx)
	return nil
}
