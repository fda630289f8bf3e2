package transport

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/net/http2"

	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/resilience"
)

// HTTPClient is the net/http Client.
type HTTPClient struct {
	httpClient *http.Client
	config     Config
	guard      *resilience.Guard
	log        *logger.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger used for exchange diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRoundTripper replaces the underlying transport, e.g. for tests.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.httpClient.Transport = rt }
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client from configuration.
func NewHTTPClient(cfg Config, opts ...Option) (*HTTPClient, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt, err := newRoundTripper(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CircuitBreaker != nil && cfg.CircuitBreaker.IsFailure == nil {
		cb := *cfg.CircuitBreaker
		cb.IsFailure = countsAgainstBreaker
		cfg.CircuitBreaker = &cb
	}

	c := &HTTPClient{
		httpClient: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		config:     cfg,
		guard:      resilience.NewGuard(cfg.CircuitBreaker, cfg.RateLimiter),
		log:        logger.Get(logger.ComponentName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newRoundTripper(cfg Config) (http.RoundTripper, error) {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}

	if cfg.H2C {
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		}, nil
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = dialer.DialContext
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		t.TLSClientConfig = tlsCfg
	}
	return t, nil
}

// countsAgainstBreaker ignores failures the server did not cause.
func countsAgainstBreaker(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return true
	}
	switch code {
	case ErrCodeCancelled, ErrCodeInvalidRequest, ErrCodeAuth, ErrCodeNotFound, ErrCodeClient:
		return false
	}
	return true
}

// Send performs a blocking exchange.
func (c *HTTPClient) Send(ctx context.Context, req *Request, handler BodyHandler) (*Response, error) {
	var resp *Response
	err := c.guard.Do(ctx, func() error {
		var execErr error
		resp, execErr = c.exchange(ctx, req, handler)
		return execErr
	})
	if err != nil {
		te := Classify(ctx, err)
		c.log.WithContext(ctx).Debug("exchange failed", logger.Fields(
			logger.FieldVerb, req.Method,
			logger.FieldURI, req.URL.Redacted(),
			logger.FieldError, te.Error(),
		))
		// A classified status error still carries its response.
		if te.Response != nil {
			return te.Response, te
		}
		return nil, te
	}
	return resp, nil
}

// SendAsync performs the exchange on its own goroutine.
func (c *HTTPClient) SendAsync(ctx context.Context, req *Request, handler BodyHandler) *Future {
	return Go(ctx, func(ctx context.Context) (*Response, error) {
		return c.Send(ctx, req, handler)
	})
}

func (c *HTTPClient) exchange(ctx context.Context, req *Request, handler BodyHandler) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, Classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if handler == nil {
		handler = DiscardBody
	}
	body, err := handler(resp.Body)
	if err != nil {
		return nil, Classify(ctx, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Request:    req,
	}
	if c.config.FailOnErrorStatus {
		if statusErr := ClassifyStatus(result); statusErr != nil {
			return nil, statusErr
		}
	}
	return result, nil
}

func (c *HTTPClient) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if !req.Body.Empty() {
		body = req.Body.Reader
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, NewInvalidRequestError(err)
	}
	if !req.Body.Empty() && req.Body.Length >= 0 {
		httpReq.ContentLength = req.Body.Length
	}
	if reopen := req.Body.Reopen; reopen != nil && !req.Body.Empty() {
		httpReq.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(reopen()), nil
		}
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	if c.config.RequestIDHeader != "" {
		httpReq.Header.Set(c.config.RequestIDHeader, uuid.NewString())
	}
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	if err := c.config.Auth.apply(httpReq); err != nil {
		return nil, NewInvalidRequestError(err)
	}
	return httpReq, nil
}

// IsAvailable reports whether the circuit breaker would admit an exchange.
func (c *HTTPClient) IsAvailable(_ context.Context) bool {
	return c.guard.Available()
}

// Close releases idle connections.
func (c *HTTPClient) Close(_ context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Config returns the effective configuration.
func (c *HTTPClient) Config() Config {
	return c.config
}

// Unwrap returns the underlying *http.Client.
func (c *HTTPClient) Unwrap() *http.Client {
	return c.httpClient
}
