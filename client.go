package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultEndpoint is the Pushover message API endpoint.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

const defaultSendTimeout = 10 * time.Second

// Config is the construction-time configuration for a Client. All fields
// are captured at NewClient and never mutated afterward, so one Client is
// safe for concurrent sends.
type Config struct {
	// Token is the application API token. Required.
	Token string
	// DefaultUser receives sends that name no recipients.
	DefaultUser string
	// Endpoint overrides the message API endpoint, mainly for tests and
	// proxies. Defaults to DefaultEndpoint.
	Endpoint string
	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics, when set, records delivery counters and send durations.
	Metrics *Metrics
}

// Client sends messages through the Pushover API. Construct it with
// NewClient; the zero value is not usable.
type Client struct {
	token       string
	defaultUser string
	endpoint    string
	http        *resty.Client
	logger      *zap.Logger
	metrics     *Metrics
}

func NewClient(cfg Config) (*Client, error) {
	client := resty.New()
	client.SetTimeout(defaultSendTimeout)
	client.SetRetryCount(0)

	return NewClientWithHTTP(cfg, client)
}

// NewClientWithHTTP builds a Client on a caller-supplied resty client,
// for custom transports, proxies, or test doubles. A zero client timeout
// is replaced with the default; retries are always disabled, the library
// issues exactly one POST per recipient.
func NewClientWithHTTP(cfg Config, client *resty.Client) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("%w: application token is required", ErrValidation)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: resty client is required", ErrValidation)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q", ErrValidation, cfg.Endpoint)
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultSendTimeout)
	}
	client.SetRetryCount(0)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:       token,
		defaultUser: strings.TrimSpace(cfg.DefaultUser),
		endpoint:    endpoint,
		http:        client,
		logger:      logger,
		metrics:     cfg.Metrics,
	}, nil
}

// apiResponse is the JSON body the message API returns for every call.
type apiResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}

const maxBodySnippet = 512

// deliver issues the single POST for one recipient and folds the outcome
// into a Receipt. Failures are carried in Receipt.Err, never returned,
// so one recipient cannot affect its siblings.
func (c *Client) deliver(ctx context.Context, msg Message, recipient string, devices []string) Receipt {
	receipt := Receipt{Recipient: recipient}

	form := encodeMessage(c.token, recipient, msg, devices)

	sendStart := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(form.Encode()).
		Post(c.endpoint)
	c.metrics.observeSendDuration(msg.Priority, time.Since(sendStart))

	if err != nil {
		receipt.Err = &TransportError{Recipient: recipient, Cause: err}
		return receipt
	}

	receipt.HTTPStatus = resp.StatusCode()

	var decoded apiResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		receipt.Err = &DecodeError{
			Recipient:  recipient,
			HTTPStatus: resp.StatusCode(),
			Body:       bodySnippet(resp.Body()),
			Cause:      err,
		}
		return receipt
	}

	receipt.Status = decoded.Status
	receipt.RequestID = decoded.Request
	receipt.Errors = decoded.Errors

	if decoded.Status != 1 {
		receipt.Err = &ServiceError{
			Recipient:  recipient,
			HTTPStatus: resp.StatusCode(),
			Status:     decoded.Status,
			RequestID:  decoded.Request,
			Errors:     decoded.Errors,
		}
	}

	return receipt
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		return s[:maxBodySnippet]
	}
	return s
}
