package translator

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	ServiceName    = "language_translator"
	DefaultURL     = "https://gateway.watsonplatform.net/language-translator/api"
	DefaultVersion = "v2"

	envUsername = "LANGUAGE_TRANSLATOR_USERNAME"
	envPassword = "LANGUAGE_TRANSLATOR_PASSWORD"
	envURL      = "LANGUAGE_TRANSLATOR_URL"
	envBindings = "VCAP_SERVICES"
)

var ErrNoCredentials = errors.New("no credentials found")

// ConfigError reports a client that cannot be constructed from the supplied
// configuration and environment.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s configuration: %s: %v", ServiceName, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s configuration: %s", ServiceName, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type ServiceConfig struct {
	Username        string `mapstructure:"username" json:"username"`
	Password        string `mapstructure:"password" json:"password"`
	URL             string `mapstructure:"url" json:"url"`
	Version         string `mapstructure:"version" json:"version"`
	Token           string `mapstructure:"token" json:"token"`
	Unauthenticated bool   `mapstructure:"unauthenticated" json:"unauthenticated"`
}

// AuthorizationHeader returns the value of the Authorization header for
// requests made with this configuration, or "" when none is sent.
func (c ServiceConfig) AuthorizationHeader() string {
	switch {
	case c.Token != "":
		return "Bearer " + c.Token
	case c.Username != "" && c.Password != "":
		raw := c.Username + ":" + c.Password
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	default:
		return ""
	}
}

// Environment is a snapshot of environment variables. Resolve only looks at
// the snapshot it is given.
type Environment map[string]string

// EnvironmentFromList builds an Environment from KEY=VALUE pairs as returned
// by os.Environ.
func EnvironmentFromList(pairs []string) Environment {
	env := make(Environment, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}

type bindingCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

func (c bindingCredentials) usable() bool {
	return c.Username != "" && c.Password != ""
}

type binding struct {
	Name        string             `json:"name"`
	Label       string             `json:"label"`
	Credentials bindingCredentials `json:"credentials"`
}

// Resolve produces the ServiceConfig a client runs with. Explicit credentials
// win over LANGUAGE_TRANSLATOR_* variables, which win over VCAP_SERVICES
// bindings.
func Resolve(explicit ServiceConfig, env Environment) (ServiceConfig, error) {
	cfg := explicit

	switch {
	case cfg.Token != "":
		cfg.Username, cfg.Password = "", ""
	case cfg.Username != "" && cfg.Password != "":
	default:
		creds, found, err := credentialsFromEnvironment(env)
		if err != nil {
			return ServiceConfig{}, err
		}
		switch {
		case found:
			cfg.Username = creds.Username
			cfg.Password = creds.Password
			if cfg.URL == "" {
				cfg.URL = creds.URL
			}
		case cfg.Unauthenticated:
		default:
			return ServiceConfig{}, &ConfigError{
				Reason: "username and password are required unless unauthenticated is set",
				Err:    ErrNoCredentials,
			}
		}
	}

	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	if err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.URL, validation.Required, is.URL),
		validation.Field(&cfg.Version, validation.Required),
	); err != nil {
		return ServiceConfig{}, &ConfigError{Reason: "malformed service endpoint", Err: err}
	}

	return cfg, nil
}

func credentialsFromEnvironment(env Environment) (bindingCredentials, bool, error) {
	direct := bindingCredentials{
		Username: env[envUsername],
		Password: env[envPassword],
		URL:      env[envURL],
	}
	if direct.usable() {
		return direct, true, nil
	}

	raw := strings.TrimSpace(env[envBindings])
	if raw == "" {
		return bindingCredentials{}, false, nil
	}

	var services map[string][]binding
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return bindingCredentials{}, false, &ConfigError{Reason: "cannot parse " + envBindings, Err: err}
	}

	creds, ok := lookupBinding(services, ServiceName)
	if ok && creds.URL == "" {
		creds.URL = direct.URL
	}
	return creds, ok, nil
}

// lookupBinding accepts both binding layouts: entries listed directly under
// the service name, and entries under any key labelled with the service name.
func lookupBinding(services map[string][]binding, name string) (bindingCredentials, bool) {
	for _, b := range services[name] {
		if b.Credentials.usable() {
			return b.Credentials, true
		}
	}

	keys := make([]string, 0, len(services))
	for key := range services {
		if key != name {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, b := range services[key] {
			if (b.Label == name || b.Name == name) && b.Credentials.usable() {
				return b.Credentials, true
			}
		}
	}
	return bindingCredentials{}, false
}
