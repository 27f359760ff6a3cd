package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// Paths of the external services, relative to their base URL.
const (
	PathDepthInMasl = "/boreholegeometry/getDepthInMasl"
	PathDepthMD     = "/boreholegeometry/getDepthMD"
	PathReframe     = "/reframe/"
)

// ErrUnexpectedStatus is returned when a service answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

type clientOptions struct {
	http     *http.Client
	logger   *slog.Logger
	altitude float64
}

// ClientOption configures the HTTP clients.
type ClientOption func(*clientOptions)

// WithHTTPClient sets the underlying client (e.g. for custom transports).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		if c != nil {
			o.http = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAltitude sets the altitude sent along with reframe requests.
func WithAltitude(alt float64) ClientOption {
	return func(o *clientOptions) {
		o.altitude = alt
	}
}

func newClientOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GeometryClient implements ports.GeometryService against the borehole geometry API.
type GeometryClient struct {
	baseURL string
	opts    clientOptions
}

var _ ports.GeometryService = (*GeometryClient)(nil)

// NewGeometryClient creates a client for the geometry API at baseURL.
func NewGeometryClient(baseURL string, opts ...ClientOption) *GeometryClient {
	return &GeometryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    newClientOptions(opts),
	}
}

// ConvertDepth implements ports.GeometryService.
func (c *GeometryClient) ConvertDepth(ctx context.Context, boreholeID string, value float64, from domain.VerticalReference) (float64, error) {
	q := url.Values{}
	q.Set("boreholeId", boreholeID)

	var path string
	switch from {
	case domain.MeasuredDepth:
		path = PathDepthInMasl
		q.Set("depth", formatQuery(value))
	case domain.MetersAboveSeaLevel:
		path = PathDepthMD
		q.Set("depthMasl", formatQuery(value))
	default:
		return 0, from.Validate()
	}

	var depth *float64
	if err := getJSON(ctx, c.opts, c.baseURL+path+"?"+q.Encode(), &depth); err != nil {
		return 0, err
	}
	if depth == nil {
		return 0, fmt.Errorf("geometry service returned no depth for borehole %s", boreholeID)
	}
	return *depth, nil
}

// TransformClient implements ports.CoordinateTransformer against a reframe service.
type TransformClient struct {
	baseURL string
	opts    clientOptions
}

var _ ports.CoordinateTransformer = (*TransformClient)(nil)

// NewTransformClient creates a client for the reframe service at baseURL.
func NewTransformClient(baseURL string, opts ...ClientOption) *TransformClient {
	return &TransformClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    newClientOptions(opts),
	}
}

// ReframeResponse is the body returned by the reframe service.
// Coordinates may be encoded as numbers or numeric strings.
type ReframeResponse struct {
	Easting  json.Number `json:"easting"`
	Northing json.Number `json:"northing"`
}

// Transform implements ports.CoordinateTransformer.
func (c *TransformClient) Transform(ctx context.Context, from domain.ReferenceSystem, coord domain.Coordinate) (domain.Coordinate, error) {
	sys, err := domain.LookupReferenceSystem(from)
	if err != nil {
		return domain.Coordinate{}, err
	}

	q := url.Values{}
	q.Set("easting", formatQuery(coord.Easting))
	q.Set("northing", formatQuery(coord.Northing))
	q.Set("altitude", formatQuery(c.opts.altitude))
	q.Set("format", "json")

	var body ReframeResponse
	if err := getJSON(ctx, c.opts, c.baseURL+PathReframe+sys.ReframePath+"?"+q.Encode(), &body); err != nil {
		return domain.Coordinate{}, err
	}

	easting, errE := body.Easting.Float64()
	northing, errN := body.Northing.Float64()
	if err := errors.Join(errE, errN); err != nil {
		return domain.Coordinate{}, fmt.Errorf("invalid reframe response: %w", err)
	}
	return domain.Coordinate{Easting: easting, Northing: northing}, nil
}

func getJSON(ctx context.Context, o clientOptions, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := o.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	o.logger.Debug("HTTP request", "url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w %s: %s", ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func formatQuery(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
