// Package mailer delivers order confirmation emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/metrics"
)

const (
	circuitName    = "mail-api"
	requestTimeout = 10 * time.Second
	sendPath       = "/v1/send"
)

// ErrCircuitOpen is returned while the mail API is considered unavailable.
var ErrCircuitOpen = errors.New("mail api circuit open")

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// DeliveryError describes a non-2xx answer from the mail API.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail api responded %d: %s", e.StatusCode, e.Body)
}

// Permanent reports whether resending the same message cannot succeed.
func (e *DeliveryError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

type payload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// HTTPSender posts messages to a JSON mail API behind a circuit breaker.
type HTTPSender struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	from    string
	logger  *slog.Logger
}

// NewHTTPSender creates HTTP sender for the given API base URL.
func NewHTTPSender(baseURL, apiKey, from string, logger *slog.Logger) (*HTTPSender, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail api url must be absolute")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(parsed.String(), "/")).
		SetTimeout(requestTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &HTTPSender{
		client:  client,
		breaker: newBreaker(logger),
		from:    from,
		logger:  logger,
	}, nil
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	metrics.MailCircuitState.WithLabelValues(circuitName).Set(0)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        circuitName,
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.MailCircuitState.WithLabelValues(name).Set(stateValue(to))
			logger.Info("mail circuit state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// Send posts the message. Rejections (4xx) do not count against the breaker.
func (s *HTTPSender) Send(ctx context.Context, msg model.Message) error {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(payload{From: s.from, To: msg.To, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML}).
			Post(sendPath)
		if err != nil {
			return nil, err
		}
		if resp.IsSuccess() {
			return nil, nil
		}
		deliveryErr := &DeliveryError{StatusCode: resp.StatusCode(), Body: resp.String()}
		if deliveryErr.Permanent() {
			return deliveryErr, nil
		}
		return nil, deliveryErr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return err
	}
	if rejected, ok := result.(*DeliveryError); ok {
		s.logger.Error("mail api rejected message",
			slog.String("to", msg.To),
			slog.Int("status", rejected.StatusCode))
		return rejected
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg model.Message) error {
	s.logger.InfoContext(ctx, "email",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text))
	return nil
}
