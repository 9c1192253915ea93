package pushover

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SendOptions adjusts a single Send call. The zero value sends to the
// configured default user on all of their devices.
type SendOptions struct {
	// Recipients overrides the configured default user when non-empty.
	Recipients []string
	// Devices restricts delivery to the named devices, applied to every
	// recipient in this call.
	Devices []string
	// Verbose emits a structured debug dump of the message and options
	// before sending. It has no effect on the wire payload.
	Verbose bool
}

// Receipt is the delivery outcome for a single recipient. Receipts are
// never mutated after Send returns.
type Receipt struct {
	Recipient string
	// HTTPStatus is the status code of the API call, 0 when the request
	// never completed.
	HTTPStatus int
	// Status is the API's status field; 1 means the message was accepted.
	Status int
	// RequestID correlates this delivery with the service's support logs.
	RequestID string
	// Errors are the service-reported problems, set alongside Err when
	// the service rejects the message.
	Errors []string
	// Err is the per-recipient failure: a *TransportError, *DecodeError,
	// or *ServiceError. Nil on success.
	Err error
}

// Failed reports whether this recipient's delivery failed.
func (r Receipt) Failed() bool { return r.Err != nil }

// Send delivers one message to every resolved recipient and returns one
// receipt per recipient, in recipient order regardless of which request
// finishes first.
//
// Delivery is best-effort: a failed recipient is reported through its
// receipt and never cancels or hides a sibling's outcome. Send itself
// returns an error only for pre-flight failures (invalid message, no
// recipients), in which case no network activity has happened.
func (c *Client) Send(ctx context.Context, msg Message, opts SendOptions) ([]Receipt, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	recipients := c.resolveRecipients(opts)
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	logger := withContextLogger(c.logger, ctx)
	if opts.Verbose {
		logger.Debug("sending message",
			zap.Any("message", msg),
			zap.Strings("recipients", recipients),
			zap.Strings("devices", opts.Devices),
		)
	}

	receipts := make([]Receipt, len(recipients))

	var g errgroup.Group
	for i, recipient := range recipients {
		g.Go(func() error {
			receipts[i] = c.deliver(ctx, msg, recipient, opts.Devices)
			return nil
		})
	}
	// Deliveries report failures through their receipt, never as a
	// goroutine error; Wait is the join barrier only.
	_ = g.Wait()

	for i := range receipts {
		receipt := &receipts[i]
		if receipt.Err != nil {
			c.metrics.incFailed(msg.Priority, failureReason(receipt.Err))
			logger.Warn("delivery failed",
				zap.String("recipient", receipt.Recipient),
				zap.Int("httpStatus", receipt.HTTPStatus),
				zap.Error(receipt.Err),
			)
			continue
		}

		c.metrics.incSent(msg.Priority)
		logger.Debug("delivery accepted",
			zap.String("recipient", receipt.Recipient),
			zap.String("requestId", receipt.RequestID),
		)
	}

	return receipts, nil
}

// resolveRecipients applies the recipient policy: explicit per-call
// recipients win, otherwise the configured default user, otherwise
// nobody.
func (c *Client) resolveRecipients(opts SendOptions) []string {
	if len(opts.Recipients) > 0 {
		return opts.Recipients
	}
	if c.defaultUser != "" {
		return []string{c.defaultUser}
	}
	return nil
}
