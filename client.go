package client

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type client struct {
	restyClient       *resty.Client
	baseURL           string
	endpoint          string
	username          string
	password          string
	hasAuth           bool
	requestTimeout    time.Duration
	conversionTimeout int
	pollInterval      time.Duration
	logger            *slog.Logger
}

var _ Client = (*client)(nil)

type Option func(*client)

// WithBasicAuth sends HTTP basic credentials on every call.
func WithBasicAuth(username, password string) Option {
	return func(c *client) {
		c.username = username
		c.password = password
		c.hasAuth = true
	}
}

// WithRequestTimeout bounds each individual HTTP call.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithConversionTimeout sets how many seconds of polling a conversion may take.
func WithConversionTimeout(seconds int) Option {
	return func(c *client) {
		if seconds > 0 {
			c.conversionTimeout = seconds
		}
	}
}

// WithEndpoint changes the resource path under the base URL.
func WithEndpoint(resource string) Option {
	return func(c *client) {
		if resource = strings.Trim(resource, "/"); resource != "" {
			c.endpoint = resource
		}
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured transport.
// Base URL, timeout and credentials are still applied on top of it.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a client for the conversion service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &client{
		baseURL:           baseURL,
		endpoint:          DefaultEndpoint,
		requestTimeout:    DefaultRequestTimeout,
		conversionTimeout: DefaultConversionTimeout,
		pollInterval:      DefaultPollInterval,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = newDefaultAPIClient()
	}

	c.restyClient.
		SetBaseURL(c.baseURL).
		SetTimeout(c.requestTimeout).
		SetRetryCount(0)

	if c.hasAuth {
		c.restyClient.SetBasicAuth(c.username, c.password)
	}

	return c, nil
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *client) Version() string {
	return APIVersion
}

// Endpoint returns the absolute URL conversions are posted to.
func (c *client) Endpoint() string {
	return c.baseURL + c.resourcePath()
}

func (c *client) resourcePath() string {
	return "/" + c.endpoint
}

// newDefaultAPIClient builds the transport. Retries stay disabled: a failed
// call is reported to the caller as is.
func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
}
