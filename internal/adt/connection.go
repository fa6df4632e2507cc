package adt

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	adtURI         = "sap/bc/adt"
	discoveryURI   = "core/discovery"
	csrfHeader     = "x-csrf-token"
	defaultTimeout = 60 * time.Second
)

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Connector is what repository objects need from a connection.
type Connector interface {
	Execute(ctx context.Context, r Request) (*Response, error)
	GetText(ctx context.Context, uri string) (string, error)
	URI() string
}

// Request describes an ADT call relative to sap/bc/adt.
type Request struct {
	Method string
	URI    string
	Params url.Values
	Header http.Header
	Body   string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Text       string
}

// Options configures a Connection. The zero value means HTTPS on port 443
// with certificate verification.
type Options struct {
	Port       string
	NoSSL      bool
	SkipVerify bool
	Timeout    time.Duration
	HTTPClient Doer
	Logger     *log.Logger
}

// session is the established state of a Connection.
type session struct {
	token string
}

// Connection is an authenticated ADT HTTP session. It is not safe for
// concurrent use.
type Connection struct {
	user      string
	password  string
	baseURL   string
	queryArgs string
	client    Doer
	logger    *log.Logger
	session   *session
}

func NewConnection(host, client, user, password string, opts Options) *Connection {
	protocol := "https"
	if opts.NoSSL {
		protocol = "http"
	}

	port := opts.Port
	if port == "" {
		port = "443"
		if opts.NoSSL {
			port = "80"
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts)
	}

	return &Connection{
		user:      user,
		password:  password,
		baseURL:   fmt.Sprintf("%s://%s:%s/%s", protocol, host, port, adtURI),
		queryArgs: "sap-client=" + url.QueryEscape(client) + "&saml2=disabled",
		client:    httpClient,
		logger:    opts.Logger,
	}
}

func newHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// cookiejar.New never fails without a PublicSuffixList
	jar, _ := cookiejar.New(nil)

	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: opts.SkipVerify,
			},
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
		},
	}
}

func (c *Connection) logr() *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return modLog()
}

// User returns the connected user.
func (c *Connection) User() string {
	return c.user
}

// URI returns the ADT path used to build object URLs (sap/bc/adt).
func (c *Connection) URI() string {
	return adtURI
}

func (c *Connection) buildURL(uri string, params url.Values) string {
	u := c.baseURL + "/" + uri + "?" + c.queryArgs
	if len(params) > 0 {
		u += "&" + params.Encode()
	}
	return u
}

func (c *Connection) do(ctx context.Context, method, u string, header http.Header, body string) (*Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, u, err)
	}

	req.SetBasicAuth(c.user, c.password)
	if c.session != nil {
		req.Header.Set(csrfHeader, c.session.token)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	c.logr().Info("Executing", "method", method, "url", u)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, u, err)
	}
	text := string(data)

	c.logr().Debug("Response", "method", method, "url", u, "status", resp.StatusCode, "body", text)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPRequestError{
			Request:    req,
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       text,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Text:       text,
	}, nil
}

// establish fetches the CSRF token on first use. A failed discovery leaves
// the connection uninitialized.
func (c *Connection) establish(ctx context.Context) error {
	if c.session != nil {
		return nil
	}

	header := http.Header{}
	header.Set(csrfHeader, "Fetch")

	resp, err := c.do(ctx, http.MethodGet, c.buildURL(discoveryURI, nil), header, "")
	if err != nil {
		return err
	}

	token := resp.Header.Get(csrfHeader)
	if token == "" {
		return ErrCSRFToken
	}

	c.session = &session{token: token}
	return nil
}

// Execute runs r in the connection's session and fails with
// *HTTPRequestError on any status >= 400.
func (c *Connection) Execute(ctx context.Context, r Request) (*Response, error) {
	if err := c.establish(ctx); err != nil {
		return nil, err
	}

	return c.do(ctx, strings.ToUpper(r.Method), c.buildURL(r.URI, r.Params), r.Header, r.Body)
}

// GetText downloads uri as text/plain.
func (c *Connection) GetText(ctx context.Context, uri string) (string, error) {
	header := http.Header{}
	header.Set("Accept", "text/plain")

	resp, err := c.Execute(ctx, Request{Method: http.MethodGet, URI: uri, Header: header})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

var _ Connector = (*Connection)(nil)
