package translator

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
)

const testBaseURL = "https://gateway.example.com/language-translator/api"

func testConfig() ServiceConfig {
	return ServiceConfig{
		Username: "user",
		Password: "pass",
		URL:      testBaseURL,
		Version:  "v2",
	}
}

func TestBuild_Operations(t *testing.T) {
	yes := true
	tests := []struct {
		name   string
		op     Operation
		src    paramSource
		method string
		url    string
		body   string
	}{
		{"list models", OpListModels, (*ListModelsOptions)(nil), http.MethodGet, testBaseURL + "/v2/models", ""},
		{"list models filtered", OpListModels, &ListModelsOptions{Source: "en", Target: "es", Default: &yes}, http.MethodGet,
			testBaseURL + "/v2/models?source=en&target=es&default=true", ""},
		{"translate", OpTranslate, &TranslateOptions{Text: "bar", ModelID: "foo"}, http.MethodPost,
			testBaseURL + "/v2/translate", `{"text":"bar","model_id":"foo"}`},
		{"translate pair", OpTranslate, &TranslateOptions{Text: "héllo \"q\"", Source: "en", Target: "fr"}, http.MethodPost,
			testBaseURL + "/v2/translate", `{"text":"héllo \"q\"","source":"en","target":"fr"}`},
		{"identifiable languages", OpListIdentifiableLanguages, noParams{}, http.MethodGet,
			testBaseURL + "/v2/identifiable_languages", ""},
		{"identify", OpIdentify, &IdentifyOptions{Text: "foo"}, http.MethodPost,
			testBaseURL + "/v2/identify", `{"text":"foo"}`},
		{"delete model", OpDeleteModel, &ModelOptions{ModelID: "foo"}, http.MethodDelete,
			testBaseURL + "/v2/models/foo", ""},
		{"get model", OpGetModel, &ModelOptions{ModelID: "foo"}, http.MethodGet,
			testBaseURL + "/v2/models/foo", ""},
		{"get model escaped", OpGetModel, &ModelOptions{ModelID: "a/b c"}, http.MethodGet,
			testBaseURL + "/v2/models/a%2Fb%20c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Build(tt.op, tt.src.params(), testConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.Method != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, desc.Method)
			}
			if desc.URL != tt.url {
				t.Errorf("expected url %q, got %q", tt.url, desc.URL)
			}
			if string(desc.Body) != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, string(desc.Body))
			}
			if tt.body != "" && desc.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON content type, got %q", desc.Header.Get("Content-Type"))
			}
			if desc.Header.Get("Authorization") != "Basic dXNlcjpwYXNz" {
				t.Errorf("expected basic auth header, got %q", desc.Header.Get("Authorization"))
			}
			if desc.Header.Get("Accept") != "application/json" {
				t.Errorf("expected Accept header, got %q", desc.Header.Get("Accept"))
			}
		})
	}
}

func TestBuild_PlainConcatenation(t *testing.T) {
	cfg := testConfig()
	cfg.URL = testBaseURL + "/"

	desc, err := Build(OpListModels, Params{}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.URL != testBaseURL+"//v2/models" {
		t.Errorf("expected url to be concatenated as-is, got %q", desc.URL)
	}
}

func TestBuild_QueryKeepsSuppliedOrder(t *testing.T) {
	var p Params
	p.Add("target", "es")
	p.Add("source", "en")

	desc, err := Build(OpListModels, p, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(desc.URL, "?target=es&source=en") {
		t.Errorf("expected supplied query order, got %q", desc.URL)
	}
}

func TestBuild_CreateModelMultipart(t *testing.T) {
	opts := &CreateModelOptions{
		BaseModelID:    "foo",
		ForcedGlossary: strings.NewReader("<tmx/>"),
		ParallelCorpus: strings.NewReader("<tmx>parallel</tmx>"),
	}

	desc, err := Build(OpCreateModel, opts.params(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", desc.Method)
	}
	if desc.URL != testBaseURL+"/v2/models?base_model_id=foo" {
		t.Errorf("unexpected url %q", desc.URL)
	}

	mediaType, params, err := mime.ParseMediaType(desc.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("failed to parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart/form-data, got %q", mediaType)
	}

	parts := map[string]string{}
	r := multipart.NewReader(bytes.NewReader(desc.Body), params["boundary"])
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		data, _ := io.ReadAll(part)
		parts[part.FormName()] = string(data)
	}

	if parts["forced_glossary"] != "<tmx/>" {
		t.Errorf("expected forced_glossary part, got %v", parts)
	}
	if parts["parallel_corpus"] != "<tmx>parallel</tmx>" {
		t.Errorf("expected parallel_corpus part, got %v", parts)
	}
	if _, ok := parts["monolingual_corpus"]; ok {
		t.Error("expected no monolingual_corpus part")
	}
}

func TestBuild_BearerToken(t *testing.T) {
	desc, err := Build(OpListModels, Params{}, ServiceConfig{Token: "tok", URL: testBaseURL, Version: "v2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Header.Get("Authorization") != "Bearer tok" {
		t.Errorf("expected bearer header, got %q", desc.Header.Get("Authorization"))
	}
}

func TestBuild_Headers(t *testing.T) {
	desc, err := Build(OpListModels, Params{}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Header.Get("Accept") != "application/json" {
		t.Errorf("expected json accept header, got %q", desc.Header.Get("Accept"))
	}
	if ua := desc.Header.Get("User-Agent"); ua != "" {
		t.Errorf("expected no user agent from Build, got %q", ua)
	}
}

func TestBuild_MissingPathParameter(t *testing.T) {
	_, err := Build(OpGetModel, Params{}, testConfig())
	if err == nil {
		t.Error("expected error for missing path parameter")
	}
}

func TestRequestDescriptor_NewHTTPRequest(t *testing.T) {
	desc, err := Build(OpIdentify, (&IdentifyOptions{Text: "foo"}).params(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, err := desc.NewHTTPRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"text":"foo"}` {
		t.Errorf("unexpected body %q", string(body))
	}

	req.Header.Set("X-Test", "1")
	if desc.Header.Get("X-Test") != "" {
		t.Error("expected request headers to be a copy of the descriptor's")
	}
}
