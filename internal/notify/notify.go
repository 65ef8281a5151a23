package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edvin/ddns/internal/metrics"
)

// New returns a Webhook posting to url, or a Noop when url is empty.
func New(url string, timeout time.Duration, logger zerolog.Logger) Notifier {
	if url == "" {
		return Noop{}
	}
	return NewWebhook(url, timeout, logger)
}

// Notifier is satisfied by both implementations; Wait blocks until in-flight
// deliveries finish and is used on shutdown.
type Notifier interface {
	Notify(ctx context.Context, message string)
	Wait()
}

// Noop drops every message. Used when no endpoint is configured.
type Noop struct{}

func (Noop) Notify(context.Context, string) {
	metrics.Notifications.WithLabelValues(metrics.ResultSkipped).Inc()
}

func (Noop) Wait() {}

// Webhook posts each message as a plain-text body to a fixed URL. Delivery
// happens in the background; failures are logged and never reported to the
// caller.
type Webhook struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
	wg         sync.WaitGroup
}

func NewWebhook(url string, timeout time.Duration, logger zerolog.Logger) *Webhook {
	return &Webhook{
		url:        url,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (w *Webhook) Notify(ctx context.Context, message string) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &w.logger
	}
	id := uuid.NewString()
	// Detach from the request so the delivery outlives the response.
	sendCtx := context.WithoutCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx, cancel := context.WithTimeout(sendCtx, w.timeout)
		defer cancel()

		if err := w.send(ctx, id, message); err != nil {
			metrics.Notifications.WithLabelValues(metrics.ResultFailed).Inc()
			logger.Warn().Err(err).Str("notification_id", id).Msg("notification failed")
			return
		}
		metrics.Notifications.WithLabelValues(metrics.ResultSent).Inc()
		logger.Debug().Str("notification_id", id).Msg("notification sent")
	}()
}

// Wait blocks until all in-flight notifications have completed.
func (w *Webhook) Wait() {
	w.wg.Wait()
}

func (w *Webhook) send(ctx context.Context, id, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBufferString(message))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("X-Notification-ID", id)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post notification: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
