// Package client talks to the remote Closure Compiler web service.
package client

import (
	"closurec/internal/application/common/slogger"
	"closurec/internal/domain/compilation"
	"closurec/internal/domain/errors/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
)

const (
	// userAgent is the User-Agent header value sent with all API requests.
	userAgent = "closurec/1.0"

	// contentTypeForm is the Content-Type header value for compile requests.
	contentTypeForm = "application/x-www-form-urlencoded"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 64 << 20
)

// Form field names understood by the compilation service.
const (
	fieldCompilationLevel = "compilation_level"
	fieldOutputFormat     = "output_format"
	fieldOutputInfo       = "output_info"
	fieldWarningLevel     = "warning_level"
	fieldJSCode           = "js_code"
)

// Client submits compilation requests to the remote service.
type Client struct {
	apiURL     string
	httpClient *http.Client
	metrics    *clientMetrics
}

// Option customises a Client.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	meterProvider metric.MeterProvider
}

// WithHTTPClient sets the HTTP client used for requests. A nil client is ignored.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

// WithMeterProvider records request metrics on provider instead of the
// global OpenTelemetry provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = provider
	}
}

// NewClient creates a new API client with the given configuration.
// Returns an error if the configuration is nil or invalid.
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: config.Timeout}
	}

	m, err := newClientMetrics(o.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create client metrics: %w", err)
	}

	return &Client{
		apiURL:     config.APIURL,
		httpClient: o.httpClient,
		metrics:    m,
	}, nil
}

// Compile posts req to the service and parses the JSON response. It performs
// exactly one HTTP request and never retries.
//
// Transport failures wrap domain.ErrNetwork. Non-2xx statuses and bodies that
// are not a JSON object wrap domain.ErrResponseParse. Categories missing from
// the response are left empty.
func (c *Client) Compile(ctx context.Context, req compilation.Request) (*compilation.Result, error) {
	form := EncodeForm(req)
	body := form.Encode()
	level := req.Level().String()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Content-Type", contentTypeForm)
	httpReq.Header.Set("Accept", "application/json")

	slogger.Debug(ctx, "sending compilation request", slogger.Fields3(
		"url", c.apiURL,
		"compilation_level", level,
		"source_count", len(req.Sources()),
	))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.record(ctx, level, outcomeNetwork, time.Since(start), req.SourceBytes(), 0)
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.record(ctx, level, outcomeNetwork, elapsed, req.SourceBytes(), len(data))
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.record(ctx, level, outcomeUnavailable, elapsed, req.SourceBytes(), len(data))
		return nil, fmt.Errorf("%w: service responded %d %s",
			domain.ErrResponseParse, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	result, err := DecodeResult(data)
	if err != nil {
		c.metrics.record(ctx, level, outcomeParse, elapsed, req.SourceBytes(), len(data))
		return nil, err
	}

	c.metrics.record(ctx, level, outcomeSuccess, elapsed, req.SourceBytes(), len(data))
	slogger.LogPerformance(ctx, "compile", elapsed, slogger.Fields3(
		"compilation_level", level,
		"response_bytes", len(data),
		"status", resp.StatusCode,
	))

	return result, nil
}

// EncodeForm converts req into the service's form fields. Each source text
// becomes its own js_code value, in order; the service joins them into a
// single code blob.
func EncodeForm(req compilation.Request) url.Values {
	form := url.Values{}
	form.Set(fieldCompilationLevel, req.Level().String())
	form.Set(fieldOutputFormat, req.OutputFormat())
	form.Set(fieldWarningLevel, req.WarningLevel())
	for _, info := range req.OutputInfo() {
		form.Add(fieldOutputInfo, info)
	}
	for _, src := range req.Sources() {
		form.Add(fieldJSCode, src)
	}
	return form
}
