package factservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"numfacts/internal/logging"

	"go.uber.org/zap"
)

const invalidURLMessage = "Invalid URL"

// slowFetchThreshold is when a fetch gets logged as slow.
const slowFetchThreshold = 3 * time.Second

// HTTPService is the live Service: GET {endpoint}/{number}/{category}.
// It makes exactly one attempt per call.
type HTTPService struct {
	endpoint  string
	client    *http.Client
	userAgent string
}

// HTTPOption configures an HTTPService.
type HTTPOption func(*HTTPService)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPService) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPService) {
		if d > 0 {
			c := *s.client
			c.Timeout = d
			s.client = &c
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(s *HTTPService) {
		s.userAgent = ua
	}
}

// NewHTTPService creates a live service. An empty endpoint means DefaultEndpoint.
func NewHTTPService(endpoint string, opts ...HTTPOption) *HTTPService {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s := &HTTPService{
		endpoint:  strings.TrimRight(endpoint, "/"),
		client:    &http.Client{},
		userAgent: "numfacts",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint returns the base URL requests are built from.
func (s *HTTPService) Endpoint() string {
	return s.endpoint
}

// Fetch performs the request and returns the response body verbatim.
func (s *HTTPService) Fetch(ctx context.Context, number, category string) (string, error) {
	reqID := logging.NewRequestID()
	log := logging.WithRequestID(logging.CategoryFetch, reqID).With(
		zap.String("number", number),
		zap.String("category", category),
	)
	timer := logging.StartTimerWith(log, "fetch")
	defer timer.StopWithThreshold(slowFetchThreshold)

	u, err := s.buildURL(number, category)
	if err != nil {
		log.Warn("rejecting malformed request", zap.Error(err))
		return "", &FetchError{Message: invalidURLMessage, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Warn("failed to build request", zap.Error(err))
		return "", &FetchError{Message: invalidURLMessage, Err: err}
	}
	req.Header.Set("Accept", "text/plain")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	log.Debug("fetching fact", zap.String("url", u))
	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn("fact request failed", zap.Error(err))
		return "", &FetchError{Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("fact endpoint returned non-success status", zap.Int("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read fact body", zap.Error(err))
		return "", &FetchError{Message: "The response could not be read.", Err: err}
	}
	if !utf8.Valid(body) {
		log.Warn("fact body is not UTF-8", zap.Int("bytes", len(body)))
		return "", NewFetchError("The response could not be decoded.")
	}

	log.Info("fact fetched", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))
	return string(body), nil
}

// buildURL fills the {number}/{category} template. Each segment is path
// escaped; the result must be an absolute http(s) URL.
func (s *HTTPService) buildURL(number, category string) (string, error) {
	raw := s.endpoint + "/" + url.PathEscape(number) + "/" + url.PathEscape(category)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return u.String(), nil
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out."
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "The request timed out."
	}
	return "Could not connect to the server."
}
