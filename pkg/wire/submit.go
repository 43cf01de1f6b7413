package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

const maxResponseBody = 1 << 20

// Result describes a completed submission.
type Result struct {
	Status int
	// Params is what was sent.
	Params map[string]string
	// Accepted is true for 2xx responses.
	Accepted bool
	// Errors holds field and form messages returned by the endpoint. Field
	// messages have already been applied to the data source.
	Errors render.ErrorMapping
	Body   []byte
}

// Submitter invokes the endpoint of a submit action with the flat
// submission projection of a data source.
type Submitter struct {
	cfg    config
	client *http.Client
}

// NewSubmitter builds a Submitter. Without WithHTTPClient it uses a client
// with the configured timeout.
func NewSubmitter(opts ...Option) *Submitter {
	cfg := newConfig(opts)
	client := cfg.client
	switch {
	case client == nil:
		client = &http.Client{Timeout: cfg.timeout}
	case cfg.timeout > 0 && client.Timeout == 0:
		clone := *client
		clone.Timeout = cfg.timeout
		client = &clone
	}
	return &Submitter{cfg: cfg, client: client}
}

// Invoke sends ds.ActiveParams() to the endpoint of action. GET requests
// carry the params in the query; other methods send them form-encoded.
//
// 400 and 422 responses whose JSON body carries an "errors" object are
// reported through Result.Errors and marked invalid on ds; other non-2xx
// responses return a *StatusError.
func (s *Submitter) Invoke(ctx context.Context, ds *form.DataSource, action value.Action) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("wire: submit: data source is nil")
	}
	if action.Endpoint.IsZero() {
		return nil, ErrNoEndpoint
	}
	params := ds.ActiveParams()
	req, err := s.request(ctx, action.Endpoint, params)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wire: submit %s %s: %w", req.Method, action.Endpoint.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("wire: read response: %w", err)
	}

	result := &Result{
		Status:   resp.StatusCode,
		Params:   params,
		Accepted: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:     body,
	}
	s.cfg.logger.Debug("wire: submitted",
		zap.String("method", req.Method),
		zap.String("url", action.Endpoint.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("params", len(params)),
	)
	if result.Accepted {
		return result, nil
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
		if payload, ok := errorPayload(body); ok {
			result.Errors = render.ApplyErrorPayload(ds, payload)
			return result, nil
		}
	}
	return result, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func (s *Submitter) request(ctx context.Context, endpoint value.Endpoint, params map[string]string) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(endpoint.Method))
	if method == "" {
		method = http.MethodPost
	}
	target, err := url.Parse(endpoint.URL)
	if err != nil {
		return nil, fmt.Errorf("wire: submit endpoint: %w", err)
	}

	values := url.Values{}
	for key, val := range params {
		values.Set(key, val)
	}

	var body io.Reader
	if method == http.MethodGet {
		query := target.Query()
		for key, vals := range values {
			query[key] = vals
		}
		target.RawQuery = query.Encode()
	} else {
		body = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("wire: submit request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	for key, vals := range s.cfg.headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// errorPayload reads {"errors": {"path": "msg" | ["msg", ...]}}.
func errorPayload(body []byte) (map[string][]string, bool) {
	var envelope struct {
		Errors map[string]any `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil, false
	}
	out := make(map[string][]string, len(envelope.Errors))
	for key, raw := range envelope.Errors {
		switch typed := raw.(type) {
		case string:
			out[key] = append(out[key], typed)
		case []any:
			for _, entry := range typed {
				if msg, ok := entry.(string); ok {
					out[key] = append(out[key], msg)
				}
			}
		}
	}
	return out, len(out) > 0
}
