package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	pushover "github.com/kursadbilgin/pushover-client"
	"github.com/kursadbilgin/pushover-client/internal/config"
	"github.com/kursadbilgin/pushover-client/internal/observability"
	"go.uber.org/zap"
)

func main() {
	var (
		messageText  = flag.String("message", "", "message body (required)")
		title        = flag.String("title", "", "message title")
		priorityName = flag.String("priority", "normal", "priority: lowest, low, normal, high, emergency")
		linkURL      = flag.String("url", "", "supplementary URL")
		linkTitle    = flag.String("url-title", "", "display title for -url")
		sound        = flag.String("sound", "", "notification sound name")
		htmlBody     = flag.Bool("html", false, "render the body as HTML")
		monospace    = flag.Bool("monospace", false, "render the body in monospace")
		ttl          = flag.Duration("ttl", 0, "discard the message after this duration")
		recipients   = flag.String("recipients", "", "comma-separated recipient user keys (defaults to PUSHOVER_USER)")
		devices      = flag.String("devices", "", "comma-separated device names")
		repeat       = flag.Duration("repeat", 30*time.Second, "emergency re-alert interval")
		expire       = flag.Duration("expire", time.Hour, "emergency re-alert window")
		callback     = flag.String("callback", "", "emergency acknowledgement callback URL")
		tags         = flag.String("tags", "", "comma-separated emergency receipt tags")
		verbose      = flag.Bool("verbose", false, "log the message and options before sending")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	priority, err := pushover.ParsePriorityFromString(*priorityName)
	if err != nil {
		logger.Fatal("invalid priority flag", zap.Error(err))
	}

	msg := pushover.Message{
		Message:   *messageText,
		Title:     *title,
		Priority:  priority,
		Sound:     *sound,
		HTML:      *htmlBody,
		Monospace: *monospace,
		TTL:       *ttl,
	}
	if *linkURL != "" {
		msg.Link = &pushover.Link{URL: *linkURL, Title: *linkTitle}
	}
	if priority == pushover.PriorityEmergency {
		msg.Emergency = &pushover.Emergency{
			Repeat:   *repeat,
			Expire:   *expire,
			Callback: *callback,
			Tags:     splitList(*tags),
		}
	}

	httpClient := resty.New()
	httpClient.SetTimeout(time.Duration(cfg.SendTimeoutSec) * time.Second)

	client, err := pushover.NewClientWithHTTP(pushover.Config{
		Token:       cfg.Token,
		DefaultUser: cfg.DefaultUser,
		Endpoint:    cfg.Endpoint,
		Logger:      logger,
	}, httpClient)
	if err != nil {
		logger.Fatal("client initialization failed", zap.Error(err))
	}

	ctx := pushover.WithCorrelationID(context.Background(), uuid.NewString())

	receipts, err := client.Send(ctx, msg, pushover.SendOptions{
		Recipients: splitList(*recipients),
		Devices:    splitList(*devices),
		Verbose:    *verbose,
	})
	if err != nil {
		logger.Fatal("send failed", zap.Error(err))
	}

	failed := 0
	for _, receipt := range receipts {
		if receipt.Failed() {
			failed++
			logger.Error("delivery failed",
				zap.String("recipient", receipt.Recipient),
				zap.Int("httpStatus", receipt.HTTPStatus),
				zap.Error(receipt.Err),
			)
			continue
		}

		logger.Info("delivered",
			zap.String("recipient", receipt.Recipient),
			zap.String("requestId", receipt.RequestID),
		)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
