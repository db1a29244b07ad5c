// Package backend talks to the external ham-sandwich computation service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// Algorithm selects the cut endpoint.
type Algorithm string

const (
	Default    Algorithm = "default"
	ILP        Algorithm = "ilp"
	MLP        Algorithm = "mlp"
	BruteForce Algorithm = "brute-force"
)

// Algorithms lists the accepted values in display order.
var Algorithms = []Algorithm{Default, ILP, MLP, BruteForce}

const (
	teachEndpoint = "teach-ham-sandwich-viz/"
	maxAttempts   = 3
	maxPoints     = 50
	// RequestIDHeader carries a per-call id for correlating backend logs.
	RequestIDHeader = "X-Request-ID"
)

var (
	ErrEmptyPointSet    = errors.New("both red and blue point sets must be non-empty")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrNoCut            = errors.New("backend returned no usable cut")
)

// ParseAlgorithm accepts the names in Algorithms, case-insensitively; an
// empty string means Default.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", errors.Wrap(ErrUnknownAlgorithm, s)
}

// Endpoint returns the path (with trailing slash) serving the algorithm.
func (a Algorithm) Endpoint() string {
	switch a {
	case ILP:
		return "ham-sandwich-ilp/"
	case MLP:
		return "ham-sandwich-mlp/"
	case BruteForce:
		return "brute-force/"
	default:
		return "ham-sandwich-viz/"
	}
}

// MaxPointsFor is the per-colour cap the viewer enforces before calling the
// backend with the given algorithm.
func MaxPointsFor(Algorithm) int { return maxPoints }

// SampleKind is a downloadable sample file type.
type SampleKind string

const (
	SampleCSV   SampleKind = "csv"
	SampleJSON  SampleKind = "json"
	SampleExcel SampleKind = "excel"
)

// Extension returns the file extension for a sample kind.
func (k SampleKind) Extension() string {
	if k == SampleExcel {
		return "xlsx"
	}
	return string(k)
}

// Client calls the backend. The zero value is not usable; use NewClient.
type Client struct {
	BaseURL   string
	Algorithm Algorithm
	HTTP      *http.Client
	// Backoff is the delay before the second attempt; it doubles afterwards.
	Backoff time.Duration
}

func NewClient(baseURL string, alg Algorithm, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Algorithm: alg,
		HTTP:      &http.Client{Timeout: timeout},
		Backoff:   100 * time.Millisecond,
	}
}

type pointsPayload struct {
	RedPoints  [][2]float64 `json:"redPoints"`
	BluePoints [][2]float64 `json:"bluePoints"`
}

func toPairs(ps []viewport.Point) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

type cutResponse struct {
	IsVertical bool     `json:"is_vertical"`
	Slope      *float64 `json:"slope"`
	YIntercept *float64 `json:"y_intercept"`
	XIntercept *float64 `json:"x_intercept"`
}

func (r cutResponse) line() (viewport.Line, error) {
	if r.IsVertical {
		if r.XIntercept == nil {
			return viewport.Line{}, errors.Wrap(ErrNoCut, "vertical cut without x_intercept")
		}
		return viewport.NewVerticalLine(*r.XIntercept), nil
	}
	if r.Slope == nil || r.YIntercept == nil {
		return viewport.Line{}, errors.Wrap(ErrNoCut, "cut without slope/y_intercept")
	}
	return viewport.NewLine(*r.Slope, *r.YIntercept), nil
}

type teachResponse struct {
	StepsTaken []steps.Step `json:"stepsTaken"`
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend: %s (%d)", e.Message, e.Status)
}

// Cut asks the configured algorithm for the final cut.
func (c *Client) Cut(ctx context.Context, red, blue []viewport.Point) (viewport.Line, error) {
	if len(red) == 0 || len(blue) == 0 {
		return viewport.Line{}, ErrEmptyPointSet
	}
	var resp cutResponse
	if err := c.postPoints(ctx, c.Algorithm.Endpoint(), red, blue, &resp); err != nil {
		return viewport.Line{}, err
	}
	return resp.line()
}

// Teach asks for the step-by-step derivation. The returned sequence starts
// with steps.InitialStep().
func (c *Client) Teach(ctx context.Context, red, blue []viewport.Point) ([]steps.Step, error) {
	if len(red) == 0 || len(blue) == 0 {
		return nil, ErrEmptyPointSet
	}
	var resp teachResponse
	if err := c.postPoints(ctx, teachEndpoint, red, blue, &resp); err != nil {
		return nil, err
	}
	return append([]steps.Step{steps.InitialStep()}, resp.StepsTaken...), nil
}

// SampleFile downloads one of the backend's sample point-set files.
func (c *Client) SampleFile(ctx context.Context, kind SampleKind) ([]byte, error) {
	switch kind {
	case SampleCSV, SampleJSON, SampleExcel:
	default:
		return nil, errors.Errorf("unknown sample kind %q", kind)
	}
	resp, err := c.do(ctx, http.MethodGet, "get-sample-file/"+string(kind), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return data, errors.Wrap(err, "read sample file")
}

func (c *Client) postPoints(ctx context.Context, endpoint string, red, blue []viewport.Point, out interface{}) error {
	body, err := json.Marshal(pointsPayload{RedPoints: toPairs(red), BluePoints: toPairs(blue)})
	if err != nil {
		return errors.Wrap(err, "encode points")
	}
	defer logging.TimeTrack(time.Now(), "POST "+endpoint)
	resp, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decode %s", endpoint)
}

// do sends the request, retrying transport errors and 5xx answers with a
// doubling backoff. Non-2xx final answers become *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	url := c.BaseURL + "/" + endpoint
	reqID := uuid.NewString()
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.Backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), method+" "+endpoint)
			case <-time.After(delay):
			}
		}
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set(RequestIDHeader, reqID)
		resp, err := c.HTTP.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), method+" "+endpoint)
			}
			lastErr = errors.Wrapf(err, "%s %s", method, endpoint)
			logging.Warnf("[backend] %s %s attempt %d failed: %v", method, endpoint, attempt+1, err)
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		apiErr := readAPIError(resp)
		if resp.StatusCode < 500 {
			return nil, apiErr
		}
		lastErr = apiErr
		logging.Warnf("[backend] %s %s attempt %d: %v", method, endpoint, attempt+1, apiErr)
	}
	return nil, lastErr
}

func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &payload)
	return &APIError{Status: resp.StatusCode, Message: payload.Error}
}
