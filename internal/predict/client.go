// Package predict submits a single image to the remote character classifier
// and interprets its answer.
package predict

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/example/glyphpad/internal/payload"
)

const (
	// DefaultEndpoint is where the classifier listens in development.
	DefaultEndpoint = "http://127.0.0.1:5000/predict"
	// DefaultField is the multipart field carrying the image.
	DefaultField = "file"
)

// Result is a well-formed prediction.
type Result struct {
	Index int
	Char  string
}

// Predictor classifies an image payload.
type Predictor interface {
	Predict(ctx context.Context, p *payload.Payload) (*Result, error)
}

// Client calls the prediction endpoint over HTTP. At most one call runs at a
// time; a second concurrent call fails fast with ErrBusy.
type Client struct {
	url      *url.URL
	field    string
	http     *http.Client
	logger   log.Logger
	endpoint endpoint.Endpoint
	inflight *semaphore.Weighted
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client; its Timeout bounds each submission.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithField overrides the multipart field name.
func WithField(name string) Option { return func(c *Client) { c.field = name } }

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient returns a Client posting to rawURL.
func NewClient(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid endpoint url %q: scheme must be http or https", rawURL)
	}
	c := &Client{
		url:      u,
		field:    DefaultField,
		http:     http.DefaultClient,
		logger:   log.NewNopLogger(),
		inflight: semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(c)
	}
	if c.field == "" {
		c.field = DefaultField
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = log.NewNopLogger()
	}
	c.logger = log.With(c.logger, "component", "predict")
	c.endpoint = httptransport.NewClient(
		http.MethodPost,
		c.url,
		encodeMultipart(c.field),
		decodeResponse,
		httptransport.SetClient(c.http),
		httptransport.ClientBefore(setRequestID),
	).Endpoint()
	return c, nil
}

// Predict posts p and waits for the outcome. Errors are a *ServerError, a
// *TransportError, ErrBusy, or wrap payload.ErrUnavailable when the body
// could not be built.
func (c *Client) Predict(ctx context.Context, p *payload.Payload) (*Result, error) {
	if p == nil {
		return nil, errors.Wrap(payload.ErrUnavailable, "nil payload")
	}
	if !c.inflight.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer c.inflight.Release(1)

	id := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	logger := log.With(c.logger, "request_id", id)
	level.Info(logger).Log("msg", "submitting", "filename", p.Filename, "bytes", p.Size(), "url", c.url.String())

	start := time.Now()
	resp, err := c.endpoint(ctx, p)
	took := time.Since(start)
	if err != nil {
		err = classify(err)
		level.Warn(logger).Log("msg", "prediction failed", "err", err, "took", took)
		return nil, err
	}
	res, ok := resp.(*Result)
	if !ok {
		return nil, &TransportError{Err: errors.Errorf("unexpected response %T", resp)}
	}
	level.Info(logger).Log("msg", "prediction", "index", res.Index, "char", res.Char, "took", took)
	return res, nil
}

func classify(err error) error {
	var (
		srvErr *ServerError
		trErr  *TransportError
		encErr *encodeError
	)
	switch {
	case errors.As(err, &srvErr):
		return srvErr
	case errors.As(err, &trErr):
		return trErr
	case errors.As(err, &encErr):
		return errors.Wrap(payload.ErrUnavailable, encErr.Error())
	default:
		return &TransportError{Err: err}
	}
}
