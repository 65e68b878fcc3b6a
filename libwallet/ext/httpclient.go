package ext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/decred/slog"
)

const (
	defaultHttpClientTimeout = 10 * time.Second

	// maxResponseSize bounds the body read from a rate or fee API.
	maxResponseSize = 1 << 20
)

type (
	// Client is the base for http/https calls
	Client struct {
		httpClient *http.Client
	}

	// ReqConfig models the configuration options for requests.
	ReqConfig struct {
		Payload []byte
		Method  string
		HTTPURL string
	}
)

// NewClient returns a client with its own transport and a request timeout.
func NewClient() *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		httpClient: &http.Client{
			Timeout:   defaultHttpClientTimeout,
			Transport: t,
		},
	}
}

func newRequest(ctx context.Context, reqConfig *ReqConfig) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.HTTPURL, bytes.NewReader(reqConfig.Payload))
	if err != nil {
		return nil, err
	}
	if reqConfig.Method == http.MethodPost || reqConfig.Method == http.MethodPut {
		req.Header.Add("Content-Type", "application/json;charset=utf-8")
	}
	req.Header.Add("Accept", "application/json")
	return req, nil
}

// Do sends the request described by reqConfig and decodes the JSON body of a
// 200 response into response.
func (c *Client) Do(ctx context.Context, reqConfig *ReqConfig, response interface{}) error {
	if _, err := url.ParseRequestURI(reqConfig.HTTPURL); err != nil {
		return fmt.Errorf("error: url not properly constituted: %w", err)
	}

	req, err := newRequest(ctx, reqConfig)
	if err != nil {
		return err
	}

	traceDump("request", func() ([]byte, error) { return httputil.DumpRequestOut(req, false) })
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	traceDump("response", func() ([]byte, error) { return httputil.DumpResponse(resp, false) })

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error: status: %v resp: %s", resp.Status, body)
	}
	return json.Unmarshal(body, response)
}

// traceDump logs the headers returned by dump at trace level.
func traceDump(kind string, dump func() ([]byte, error)) {
	if log.Level() > slog.LevelTrace {
		return
	}
	b, err := dump()
	if err != nil {
		log.Tracef("dump %s err: %v", kind, err)
		return
	}
	log.Tracef("dump %s ok: %s", kind, b)
}
