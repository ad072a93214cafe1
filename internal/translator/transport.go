package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// Err returns an *APIError for 4xx and 5xx responses and nil otherwise.
func (r *Response) Err() error {
	if r.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiErr := &APIError{StatusCode: r.StatusCode, Body: r.Body}
	var errResp struct {
		Error       string `json:"error"`
		Description string `json:"description"`
		Code        int    `json:"code"`
	}
	if json.Unmarshal(r.Body, &errResp) == nil {
		apiErr.Message = errResp.Error
		if apiErr.Message == "" {
			apiErr.Message = errResp.Description
		}
	}
	return apiErr
}

func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Call is the pending result of one operation. It completes exactly once,
// with either a response or an error.
type Call struct {
	// Request is the request on the wire; nil when the call failed before
	// dispatch.
	Request *http.Request

	done chan struct{}
	resp *Response
	err  error
}

func newCall() *Call {
	return &Call{done: make(chan struct{})}
}

func failedCall(err error) *Call {
	c := newCall()
	c.complete(nil, err)
	return c
}

func (c *Call) complete(resp *Response, err error) {
	c.resp, c.err = resp, err
	close(c.done)
}

func (c *Call) Done() <-chan struct{} {
	return c.done
}

func (c *Call) Wait() (*Response, error) {
	<-c.done
	return c.resp, c.err
}

// Result waits for completion or for ctx to end, whichever comes first.
func (c *Call) Result(ctx context.Context) (*Response, error) {
	select {
	case <-c.done:
		return c.resp, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Decode waits for the call and unmarshals a successful JSON response into v.
func (c *Call) Decode(v any) error {
	resp, err := c.Wait()
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return resp.DecodeJSON(v)
}

// Invoker sends request descriptors over HTTP.
type Invoker struct {
	client *http.Client
	logger zerolog.Logger
}

func NewInvoker(client *http.Client, logger zerolog.Logger) *Invoker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Invoker{client: client, logger: logger}
}

// Invoke dispatches desc and returns immediately; the round trip runs in its
// own goroutine.
func (i *Invoker) Invoke(ctx context.Context, desc *RequestDescriptor) *Call {
	req, err := desc.NewHTTPRequest(ctx)
	if err != nil {
		return failedCall(err)
	}

	call := newCall()
	call.Request = req

	i.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Msg("dispatching request")

	go func() {
		start := time.Now()
		resp, err := i.roundTrip(req)
		latency := time.Since(start)
		if err != nil {
			i.logger.Debug().Err(err).Str("method", req.Method).Dur("latency", latency).Msg("request failed")
		} else {
			i.logger.Debug().Int("status", resp.StatusCode).Str("method", req.Method).Dur("latency", latency).Msg("request completed")
		}
		call.complete(resp, err)
	}()

	return call
}

func (i *Invoker) roundTrip(req *http.Request) (*Response, error) {
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
