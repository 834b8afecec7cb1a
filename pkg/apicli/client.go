// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apicli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/tidwall/gjson"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 10 << 20
)

type Option func(c *Client)

// WithHTTPClient replaces the underlying *http.Client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// Client talks to the REST API below <baseURL><apiPrefix>. Every call sends
// the default headers and the bearer token of the request's Credentials.
type Client struct {
	conf    *config.Upstream
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(conf *config.Upstream, opts ...Option) (*Client, error) {
	base, err := url.Parse(conf.BaseURL)
	if err != nil {
		return nil, errs.WrapMsg(err, "invalid upstream base url", "baseURL", conf.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errs.ErrArgs.WrapMsg("upstream base url must be absolute", "baseURL", conf.BaseURL)
	}
	timeout := conf.RequestTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		conf: conf,
		base: base.JoinPath(conf.APIPrefix),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: max(conf.MaxIdleCon, 2),
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	if conf.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(conf.RateLimit), max(conf.RateBurst, 1))
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type request struct {
	method string
	// path is relative to the api prefix, e.g. "currencies/list".
	path string
	// route is the path template reported to metrics.
	route       string
	query       url.Values
	header      http.Header
	body        io.Reader
	contentType string
}

func (c *Client) url(r *request) string {
	u := c.base.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, r *request) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r), r.body)
	if err != nil {
		return nil, errs.WrapMsg(err, "build request failed", "path", r.path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Version", c.conf.Version)
	req.Header.Set("device-id", c.conf.DeviceID)
	req.Header.Set("Accept", "application/json")
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if creds := CredentialsFrom(ctx); creds != nil {
		if token := creds.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, r *request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errs.WrapMsg(err, "rate limit wait failed", "path", r.path)
		}
	}
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.ZDebug(ctx, "api request", "method", r.method, "url", req.URL.String())
	resp, err := c.client.Do(req)
	if err != nil {
		log.ZError(ctx, "Network Error: No response received", err, "method", r.method, "url", req.URL.String())
		prommetrics.UpstreamCall(r.method, r.route, 0)
		return nil, &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	prommetrics.UpstreamCall(r.method, r.route, resp.StatusCode)
	log.ZDebug(ctx, "api response", "method", r.method, "url", req.URL.String(), "status", resp.StatusCode, "cost", time.Since(start), "size", len(body))

	if resp.StatusCode < http.StatusBadRequest {
		return body, nil
	}
	httpErr := &HTTPError{
		Method:     r.method,
		Path:       r.path,
		StatusCode: resp.StatusCode,
		Message:    gjson.GetBytes(body, "message").String(),
		Body:       body,
	}
	c.onError(ctx, httpErr)
	return nil, httpErr
}

// onError logs the failure. A 401 also deletes the stored credential, the
// next navigation is then sent to the login page.
func (c *Client) onError(ctx context.Context, err *HTTPError) {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		log.ZWarn(ctx, "unauthorized, clearing credential", err, "path", err.Path)
		if creds := CredentialsFrom(ctx); creds != nil {
			creds.Clear(ctx)
		}
	case http.StatusForbidden:
		log.ZWarn(ctx, "access forbidden", err, "path", err.Path)
	case http.StatusNotFound:
		log.ZWarn(ctx, "resource not found", err, "path", err.Path)
	case http.StatusInternalServerError:
		log.ZError(ctx, "server error", err, "path", err.Path)
	default:
		log.ZError(ctx, "api error", err, "path", err.Path, "status", err.StatusCode)
	}
}

func (c *Client) languageHeader() http.Header {
	h := http.Header{}
	if c.conf.Language != "" {
		h.Set("Language", c.conf.Language)
	}
	return h
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, header http.Header) ([]byte, error) {
	return c.do(ctx, &request{method: http.MethodGet, route: route, path: path, query: query, header: header})
}

func (c *Client) postJSON(ctx context.Context, route, path string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errs.WrapMsg(err, "marshal request failed", "path", path)
	}
	return c.do(ctx, &request{method: http.MethodPost, route: route, path: path, body: bytes.NewReader(data)})
}

func (c *Client) postMultipart(ctx context.Context, route, path string, form *multipartForm) ([]byte, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, &request{method: http.MethodPost, route: route, path: path, body: body, contentType: contentType})
}
