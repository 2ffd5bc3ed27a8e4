package email

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ErlanBelekov/uptask/internal/metrics"
)

const defaultSendTimeout = 15 * time.Second

// Dispatcher sends auth emails in the background. Callers never wait for
// delivery and never see its outcome: failures are logged and counted.
type Dispatcher struct {
	sender      Sender
	frontendURL string
	logger      *slog.Logger
	timeout     time.Duration
	wg          sync.WaitGroup
}

func NewDispatcher(sender Sender, frontendURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		frontendURL: frontendURL,
		logger:      logger.With("component", "email_dispatcher"),
		timeout:     defaultSendTimeout,
	}
}

// Dispatch returns immediately. The send outlives ctx's cancellation but keeps its values.
func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, to Recipient) {
	msg, err := Render(kind, d.frontendURL, to)
	if err != nil {
		d.logger.ErrorContext(ctx, "render email", "kind", kind, "error", err)
		metrics.EmailsSentTotal.WithLabelValues(string(kind), "error").Inc()
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.sender.Send(sendCtx, msg); err != nil {
			d.logger.ErrorContext(sendCtx, "send email", "kind", kind, "to", msg.To, "error", err)
			metrics.EmailsSentTotal.WithLabelValues(string(kind), "error").Inc()
			return
		}
		metrics.EmailsSentTotal.WithLabelValues(string(kind), "sent").Inc()
	}()
}

// Wait blocks until every dispatched email has finished. Used on shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
