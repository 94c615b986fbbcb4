package plugins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.trai.ch/zerr"
)

// HTTP builds units that request a URL and check the status code.
type HTTP struct {
	about
	logger ports.Logger
}

// NewHTTP creates the http plugin.
func NewHTTP(deps Deps) *HTTP {
	return &HTTP{
		about: about{
			name:    "http",
			summary: "Requests a URL and checks the response status",
			help: `The http plugin sends one request per invocation. A transport error or an unexpected status code is a plugin failure.

Options:
  url      absolute http or https URL (required)
  method   request method (default GET)
  body     request body
  expect   expected status code (default 200)
  timeout  request timeout, as a Go duration (default 10s)`,
			sample: `      - name: health
        plugin: http
        options:
          url: http://localhost:9090/healthz
          # expect: 200
          # timeout: 5s
`,
		},
		logger: deps.Logger,
	}
}

type httpOptions struct {
	URL     string        `mapstructure:"url"`
	Method  string        `mapstructure:"method"`
	Body    string        `mapstructure:"body"`
	Expect  int           `mapstructure:"expect"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Build creates an http unit.
func (h *HTTP) Build(section domain.PluginSection) (ports.Unit, error) {
	opts := httpOptions{Method: http.MethodGet, Expect: http.StatusOK, Timeout: 10 * time.Second}
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}
	opts.Method = strings.ToUpper(opts.Method)
	return &httpUnit{
		label:  unitLabel(section),
		name:   section.Name,
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: h.logger,
	}, nil
}

type httpUnit struct {
	label  string
	name   string
	opts   httpOptions
	client *http.Client
	logger ports.Logger
}

func (u *httpUnit) Invoke(ctx context.Context) error {
	var body io.Reader
	if u.opts.Body != "" {
		body = strings.NewReader(u.opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, u.opts.Method, u.opts.URL, body)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cannot build request"), "url", u.opts.URL)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.Wrap(ctxErr, "request interrupted")
		}
		return failed(u.name, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	u.logger.Debug(fmt.Sprintf("%s %s: %s", u.opts.Method, u.opts.URL, resp.Status))
	if resp.StatusCode != u.opts.Expect {
		err := failed(u.name, "unexpected status code", nil)
		return zerr.With(zerr.With(err, "status", resp.StatusCode), "expected", u.opts.Expect)
	}
	return nil
}

func (u *httpUnit) Validate() error {
	parsed, err := url.Parse(u.opts.URL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return zerr.With(invalid(u.name, "url must be an absolute http or https URL"), "url", u.opts.URL)
	}
	if u.opts.Expect < 100 || u.opts.Expect > 599 {
		return invalid(u.name, "expected status must be between 100 and 599")
	}
	if u.opts.Timeout <= 0 {
		return invalid(u.name, "http timeout must be positive")
	}
	return nil
}

// Close drops idle keep-alive connections.
func (u *httpUnit) Close() error {
	u.client.CloseIdleConnections()
	return nil
}

func (u *httpUnit) String() string {
	return u.label
}
