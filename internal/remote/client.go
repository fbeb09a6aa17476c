package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultCacheSize = 4 * 1024 * 1024
	// seconds
	byDateCacheExpire = 30
)

// HeaderSource provides the identity headers sent with each request.
type HeaderSource interface {
	Headers() (http.Header, error)
}

// StatusError is returned for any non 2xx response of the workouts endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Body)
}

// Client is the workouts remote store, talking JSON over HTTP.
type Client struct {
	baseURL    string
	identity   HeaderSource
	httpClient *http.Client
	cache      *freecache.Cache
}

var _ workouts.RemoteStore = (*Client)(nil)

// NewClient creates the remote store client. A nil httpClient gets a traced
// default one; a given client gets its transport wrapped with otelhttp.
func NewClient(baseURL string, identity HeaderSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if _, traced := transport.(*otelhttp.Transport); !traced {
		c := *httpClient
		c.Transport = otelhttp.NewTransport(transport)
		httpClient = &c
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		identity:   identity,
		httpClient: httpClient,
		cache:      freecache.NewCache(defaultCacheSize),
	}
}

func (c *Client) FetchAll(ctx context.Context) (_ []workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.fetchAll")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	respBytes, err := c.do(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal workouts list: %w", err)
	}

	result := make([]workouts.Workout, 0, len(resp.Workouts))
	for _, w := range resp.Workouts {
		result = append(result, w.toWorkout())
	}
	log.Debugf("remote: fetched %d workouts", len(result))

	return result, nil
}

// FetchByDate returns nil when the server has no workout for the date.
func (c *Client) FetchByDate(ctx context.Context, date workouts.Date) (_ *workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.fetchByDate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	cacheKey, err := c.cacheKey(date)
	if err != nil {
		return nil, err
	}

	respBytes, cacheErr := c.cache.Get(cacheKey)
	if cacheErr != nil {
		log.Tracef("remote: workout for %s not in cache: %s", date, cacheErr)

		reqURL := fmt.Sprintf("%s/?date=%s", c.baseURL, url.QueryEscape(date.String()))
		respBytes, err = c.do(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		if err := c.cache.Set(cacheKey, respBytes, byDateCacheExpire); err != nil {
			log.Errorf("remote: failed to cache workout for %s: %s", date, err)
		}
	}

	var resp dateResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		c.cache.Del(cacheKey)
		return nil, fmt.Errorf("unmarshal workout for date: %w", err)
	}
	if resp.Workout == nil {
		return nil, nil
	}

	w := resp.Workout.toWorkout()
	return &w, nil
}

func (c *Client) Create(ctx context.Context, w workouts.Workout) (_ *workouts.SaveResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return c.save(ctx, http.MethodPost, w.Date, createRequest{
		Name:      w.Name,
		Date:      w.Date,
		Exercises: exercisesOrEmpty(w.Exercises),
	})
}

func (c *Client) Update(ctx context.Context, w workouts.Workout) (_ *workouts.SaveResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return c.save(ctx, http.MethodPut, w.Date, updateRequest{
		ID:        w.ID,
		Name:      w.Name,
		Date:      w.Date,
		Exercises: exercisesOrEmpty(w.Exercises),
	})
}

func (c *Client) save(ctx context.Context, method string, date workouts.Date, body any) (*workouts.SaveResult, error) {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal workout: %w", err)
	}

	respBytes, err := c.do(ctx, method, c.baseURL+"/", reqBytes)
	if err != nil {
		return nil, err
	}

	if cacheKey, err := c.cacheKey(date); err == nil {
		c.cache.Del(cacheKey)
	}

	var resp saveResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal save response: %w", err)
	}
	if !resp.Success && resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	return &workouts.SaveResult{
		Success:   resp.Success,
		WorkoutID: string(resp.WorkoutID),
	}, nil
}

func (c *Client) cacheKey(date workouts.Date) ([]byte, error) {
	h, err := c.headers()
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("workout::%s::%s", h.Get("X-VK-User-ID"), date)), nil
}

func (c *Client) headers() (http.Header, error) {
	if c.identity == nil {
		return nil, fmt.Errorf("no identity source")
	}
	return c.identity.Headers()
}

func (c *Client) do(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	headers, err := c.headers()
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, values := range headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	log.Debugf("remote: %s %s", method, reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(respBytes),
		}
	}

	return respBytes, nil
}

// statusText is the reason phrase only, e.g. "Not Found".
func statusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if s := strings.TrimPrefix(resp.Status, prefix); s != "" && s != resp.Status {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
