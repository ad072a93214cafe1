package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// RequestDescriptor is a fully resolved HTTP request that has not been sent.
type RequestDescriptor struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

func (d *RequestDescriptor) NewHTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = d.Header.Clone()
	return req, nil
}

// Build turns validated params into a request descriptor for op. It performs
// no I/O besides draining attachment readers.
func Build(op Operation, p Params, cfg ServiceConfig) (*RequestDescriptor, error) {
	path, err := expandPath(op.Path, p)
	if err != nil {
		return nil, err
	}

	u := cfg.URL + "/" + cfg.Version + path
	if query := encodeQuery(op.Query, p); query != "" {
		u += "?" + query
	}

	desc := &RequestDescriptor{
		Method: op.Method,
		URL:    u,
		Header: make(http.Header),
	}
	desc.Header.Set("Accept", "application/json")
	if auth := cfg.AuthorizationHeader(); auth != "" {
		desc.Header.Set("Authorization", auth)
	}

	switch op.Body {
	case BodyJSON:
		body, err := encodeJSONBody(op.BodyFields, p)
		if err != nil {
			return nil, err
		}
		desc.Body = body
		desc.Header.Set("Content-Type", "application/json")
	case BodyMultipart:
		body, contentType, err := encodeMultipartBody(op, p)
		if err != nil {
			return nil, err
		}
		desc.Body = body
		desc.Header.Set("Content-Type", contentType)
	}

	return desc, nil
}

func expandPath(template string, p Params) (string, error) {
	var sb strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in path %q", template)
		}
		name := rest[open+1 : open+end]
		value, ok := p.Get(name)
		if !ok {
			return "", fmt.Errorf("no value for path parameter %q", name)
		}
		sb.WriteString(rest[:open])
		sb.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}

// encodeQuery keeps parameters in the order they were supplied; url.Values
// would sort them.
func encodeQuery(names []string, p Params) string {
	var parts []string
	for _, v := range p.Values {
		if v.Value == "" || !contains(names, v.Name) {
			continue
		}
		parts = append(parts, url.QueryEscape(v.Name)+"="+url.QueryEscape(v.Value))
	}
	return strings.Join(parts, "&")
}

func encodeJSONBody(fields []string, p Params) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for _, v := range p.Values {
		if v.Value == "" || !contains(fields, v.Name) {
			continue
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		value, err := json.Marshal(v.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		n++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeMultipartBody(op Operation, p Params) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, v := range p.Values {
		if v.Value == "" || !contains(op.BodyFields, v.Name) {
			continue
		}
		if err := w.WriteField(v.Name, v.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", v.Name, err)
		}
	}

	for _, name := range op.Attachments {
		a, ok := p.attachment(name)
		if !ok {
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, a.Name, a.Filename))
		h.Set("Content-Type", a.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %s: %w", a.Name, err)
		}
		if _, err := io.Copy(part, a.Data); err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", a.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
