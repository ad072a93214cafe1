// Package translator is a client for the Language Translator v2 REST API.
//
// Every operation goes through the same steps: its parameters are checked
// against the operation's required fields, a RequestDescriptor is built from
// the operation table and the client's ServiceConfig, and the descriptor is
// handed to an Invoker. Operations return a *Call immediately; a call that
// fails validation is already complete and never reaches the network.
package translator

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

const defaultUserAgent = "lantran"

type Client struct {
	cfg        ServiceConfig
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
	invoker    *Invoker
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New resolves credentials from explicit and env and returns a client bound
// to them. A missing or malformed configuration is reported here, not per
// call.
func New(explicit ServiceConfig, env Environment, opts ...Option) (*Client, error) {
	cfg, err := Resolve(explicit, env)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		logger:    zerolog.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.invoker = NewInvoker(c.httpClient, c.logger)

	return c, nil
}

func (c *Client) Config() ServiceConfig {
	return c.cfg
}

func (c *Client) AuthorizationHeader() string {
	return c.cfg.AuthorizationHeader()
}

// Prepare validates and builds the request for op without sending it.
func (c *Client) Prepare(op Operation, src paramSource) (*RequestDescriptor, error) {
	p := src.params()
	if err := validate(op, p); err != nil {
		return nil, err
	}

	desc, err := Build(op, p, c.cfg)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		desc.Header.Set("User-Agent", c.userAgent)
	}
	return desc, nil
}

func (c *Client) do(ctx context.Context, op Operation, src paramSource) *Call {
	desc, err := c.Prepare(op, src)
	if err != nil {
		c.logger.Debug().Err(err).Str("operation", op.Name).Msg("request not sent")
		return failedCall(err)
	}
	return c.invoker.Invoke(ctx, desc)
}

// ListModels lists the models available to the caller, optionally filtered by
// language pair.
func (c *Client) ListModels(ctx context.Context, opts *ListModelsOptions) *Call {
	return c.do(ctx, OpListModels, opts)
}

func (c *Client) Translate(ctx context.Context, opts *TranslateOptions) *Call {
	return c.do(ctx, OpTranslate, opts)
}

func (c *Client) ListIdentifiableLanguages(ctx context.Context) *Call {
	return c.do(ctx, OpListIdentifiableLanguages, noParams{})
}

func (c *Client) Identify(ctx context.Context, opts *IdentifyOptions) *Call {
	return c.do(ctx, OpIdentify, opts)
}

func (c *Client) CreateModel(ctx context.Context, opts *CreateModelOptions) *Call {
	return c.do(ctx, OpCreateModel, opts)
}

func (c *Client) DeleteModel(ctx context.Context, opts *ModelOptions) *Call {
	return c.do(ctx, OpDeleteModel, opts)
}

func (c *Client) GetModel(ctx context.Context, opts *ModelOptions) *Call {
	return c.do(ctx, OpGetModel, opts)
}
