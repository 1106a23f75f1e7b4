package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultPath is where resolvers accept turn requests
const DefaultPath = "/api/game/turn"

// maxResponseBytes caps how much of a resolver reply is read
const maxResponseBytes = 4 << 20

type client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

type Config struct {
	// URL is the full resolver endpoint, e.g. http://localhost:8000/api/game/turn
	URL        string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New creates an HTTP resolver client. The transport is wrapped with
// otelhttp so each call becomes a client span.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("resolver config is required")
	}
	if cfg.URL == "" {
		return nil, dnderr.InvalidArgument("resolver url is required")
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient := *base
	httpClient.Transport = otelhttp.NewTransport(transport)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &client{
		url:    cfg.URL,
		http:   &httpClient,
		logger: logger,
	}, nil
}

// Resolve posts the payload and parses the response envelope. Context
// deadlines surface as timeout, everything else on the wire as
// transport_failure and malformed bodies as validation.
func (c *client) Resolve(ctx context.Context, payload codec.Payload) (*codec.Response, error) {
	body, err := codec.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to build resolver request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sending turn to resolver",
		zap.String("url", c.url),
		zap.Int("bytes", len(body)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dnderr.Newf(dnderr.CodeTransportFailure, "resolver returned %s", resp.Status).
			WithMeta("status", resp.StatusCode).
			WithMeta("body", truncate(raw, 256))
	}

	out, err := codec.UnmarshalResponse(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("resolver answered",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
	)
	return &out, nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return dnderr.WrapWithCode(err, dnderr.CodeTimeout, "resolver timed out")
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return dnderr.WrapWithCode(err, dnderr.CodeCancelled, "resolver call cancelled")
	default:
		return dnderr.WrapWithCode(err, dnderr.CodeTransportFailure, "resolver call failed")
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
