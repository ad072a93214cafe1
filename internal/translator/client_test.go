package translator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type recordedRequest struct {
	method string
	uri    string
	auth   string
	body   string
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, chan recordedRequest) {
	t.Helper()
	requests := make(chan recordedRequest, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- recordedRequest{
			method: r.Method,
			uri:    r.URL.RequestURI(),
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, requests
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(ServiceConfig{Username: "user", Password: "pass", URL: url}, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestClient_Operations(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *Client) *Call
		method string
		uri    string
		body   string
	}{
		{"list models", func(c *Client) *Call { return c.ListModels(context.Background(), nil) },
			http.MethodGet, "/v2/models", ""},
		{"translate", func(c *Client) *Call {
			return c.Translate(context.Background(), &TranslateOptions{Text: "bar", ModelID: "foo"})
		}, http.MethodPost, "/v2/translate", `{"text":"bar","model_id":"foo"}`},
		{"identifiable languages", func(c *Client) *Call { return c.ListIdentifiableLanguages(context.Background()) },
			http.MethodGet, "/v2/identifiable_languages", ""},
		{"identify", func(c *Client) *Call { return c.Identify(context.Background(), &IdentifyOptions{Text: "foo"}) },
			http.MethodPost, "/v2/identify", `{"text":"foo"}`},
		{"delete model", func(c *Client) *Call { return c.DeleteModel(context.Background(), &ModelOptions{ModelID: "foo"}) },
			http.MethodDelete, "/v2/models/foo", ""},
		{"get model", func(c *Client) *Call { return c.GetModel(context.Background(), &ModelOptions{ModelID: "foo"}) },
			http.MethodGet, "/v2/models/foo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, requests := newRecordingServer(t, http.StatusOK, `{}`)
			c := newTestClient(t, server.URL)

			call := tt.call(c)
			if call.Request == nil {
				t.Fatal("expected in-flight request")
			}
			if call.Request.URL.String() != server.URL+tt.uri {
				t.Errorf("expected request url %q, got %q", server.URL+tt.uri, call.Request.URL.String())
			}

			resp, err := call.Wait()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}

			got := <-requests
			if got.method != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, got.method)
			}
			if got.uri != tt.uri {
				t.Errorf("expected uri %q, got %q", tt.uri, got.uri)
			}
			if got.body != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, got.body)
			}
			if got.auth != "Basic dXNlcjpwYXNz" {
				t.Errorf("expected basic auth, got %q", got.auth)
			}
		})
	}
}

func TestClient_CreateModel(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{"model_id":"custom","status":"training"}`)
	c := newTestClient(t, server.URL)

	call := c.CreateModel(context.Background(), &CreateModelOptions{
		BaseModelID:    "foo",
		ForcedGlossary: strings.NewReader("<tmx/>"),
	})

	var model Model
	if err := call.Decode(&model); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.ModelID != "custom" {
		t.Errorf("expected model 'custom', got %q", model.ModelID)
	}

	got := <-requests
	if got.method != http.MethodPost || got.uri != "/v2/models?base_model_id=foo" {
		t.Errorf("unexpected request %s %s", got.method, got.uri)
	}
	if !strings.Contains(got.body, `name="forced_glossary"`) {
		t.Errorf("expected forced_glossary part in body, got %q", got.body)
	}
}

func TestClient_ValidationErrorNotDispatched(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	calls := []*Call{
		c.Translate(ctx, nil),
		c.Translate(ctx, &TranslateOptions{Text: "", ModelID: "foo"}),
		c.Identify(ctx, &IdentifyOptions{}),
		c.CreateModel(ctx, &CreateModelOptions{}),
		c.DeleteModel(ctx, nil),
		c.GetModel(ctx, &ModelOptions{ModelID: ""}),
	}

	for i, call := range calls {
		select {
		case <-call.Done():
		default:
			t.Fatalf("call %d: expected completed call", i)
		}
		if call.Request != nil {
			t.Errorf("call %d: expected no request", i)
		}
		_, err := call.Wait()
		if !errors.Is(err, ErrMissingParameters) {
			t.Errorf("call %d: expected ErrMissingParameters, got %v", i, err)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestClient_StatusPassedThrough(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `{"code":404,"error":"Model not found"}`)
	c := newTestClient(t, server.URL)

	call := c.GetModel(context.Background(), &ModelOptions{ModelID: "missing"})
	resp, err := call.Wait()
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}

	var apiErr *APIError
	if err := call.Decode(&Model{}); !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Model not found" {
		t.Errorf("expected message 'Model not found', got %q", apiErr.Message)
	}
}

func TestClient_TransportError(t *testing.T) {
	c, err := New(ServiceConfig{Username: "u", Password: "p", URL: "http://localhost:19999"}, nil,
		WithHTTPClient(&http.Client{Timeout: 100 * time.Millisecond}))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	call := c.ListModels(context.Background(), nil)
	if call.Request == nil {
		t.Fatal("expected request to be dispatched")
	}
	resp, err := call.Wait()
	if err == nil {
		t.Error("expected transport error")
	}
	if resp != nil {
		t.Error("expected nil response on transport error")
	}
}

func TestClient_DecodeTranslation(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK,
		`{"translations":[{"translation":"Hola"}],"word_count":1,"character_count":5}`)
	c := newTestClient(t, server.URL)

	var result TranslationResult
	if err := c.Translate(context.Background(), &TranslateOptions{Text: "Hello", Source: "en", Target: "es"}).Decode(&result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text() != "Hola" {
		t.Errorf("expected 'Hola', got %q", result.Text())
	}
	if result.WordCount != 1 {
		t.Errorf("expected word count 1, got %d", result.WordCount)
	}
}

func TestClient_ResultHonoursContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(t, server.URL)
	call := c.ListModels(context.Background(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := call.Result(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNew_FromBindings(t *testing.T) {
	for name, bindings := range map[string]string{"legacy": legacyBindings, "nested": nestedBindings} {
		t.Run(name, func(t *testing.T) {
			c, err := New(ServiceConfig{}, Environment{"VCAP_SERVICES": bindings})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.AuthorizationHeader() == "" {
				t.Error("expected non-empty Authorization header")
			}
		})
	}
}

func TestNew_NoCredentials(t *testing.T) {
	c, err := New(ServiceConfig{}, Environment{})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if c != nil {
		t.Error("expected nil client")
	}
}

func TestClient_Prepare(t *testing.T) {
	c, err := New(ServiceConfig{Username: "u", Password: "p"}, nil, WithUserAgent("lantran-test"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	desc, err := c.Prepare(OpTranslate, &TranslateOptions{Text: "bar", ModelID: "foo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.URL != DefaultURL+"/v2/translate" {
		t.Errorf("unexpected url %q", desc.URL)
	}
	if desc.Header.Get("User-Agent") != "lantran-test" {
		t.Errorf("expected user agent, got %q", desc.Header.Get("User-Agent"))
	}
}
