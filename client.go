package woopra

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/toaweme/log"
)

type Client interface {
	Get(req GetRequest) (*Response, error)
	Post(req PostRequest) (*Response, error)
}

// Response is the raw service response, never parsed.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

type Request struct {
	ID      string
	Path    string
	Query   url.Values
	Headers map[string]string
}

type GetRequest struct {
	Request
}

// PostRequest is submitted as an urlencoded form.
type PostRequest struct {
	Request

	Form url.Values
}

type httpClient struct {
	baseURL string

	client  *http.Client
	headers map[string]string
}

func NewHttpClient(baseURL, agent string, headers map[string]string) Client {
	merged := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		merged[k] = v
	}
	if agent != "" {
		merged[ClientUserAgentHeaderName] = agent
	}

	return httpClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
		headers: merged,
	}
}

func (h httpClient) Get(req GetRequest) (*Response, error) {
	return h.do(http.MethodGet, req.Request, nil)
}

func (h httpClient) Post(req PostRequest) (*Response, error) {
	headers := map[string]string{ContentTypeHeaderName: FormContentType}
	for k, v := range req.Headers {
		headers[k] = v
	}
	req.Headers = headers

	return h.do(http.MethodPost, req.Request, []byte(req.Form.Encode()))
}

func (h httpClient) do(method string, req Request, body []byte) (*Response, error) {
	log.Debug("woopra request", "method", method, "path", req.Path, "query", req.Query, "body", string(body))

	path, headers, err := h.buildRequestParams(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build request URI: %w", err)
	}

	var httpReq *http.Request
	if body != nil {
		httpReq, err = http.NewRequest(method, path, bytes.NewReader(body))
	} else {
		httpReq, err = http.NewRequest(method, path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}

	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug("woopra response", "status", resp.StatusCode, "request_id", headers[ClientRequestIDHeaderName], "body", string(data))

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Headers:    resp.Header,
	}, nil
}

func (h httpClient) buildRequestParams(req Request) (string, map[string]string, error) {
	headers := make(map[string]string)
	for k, v := range h.headers {
		headers[k] = v
	}
	for k, v := range req.Headers {
		// an empty per-request value keeps the client default
		if v == "" {
			continue
		}
		headers[k] = v
	}

	if req.ID != "" {
		headers[ClientRequestIDHeaderName] = req.ID
	} else if _, ok := headers[ClientRequestIDHeaderName]; !ok {
		headers[ClientRequestIDHeaderName] = log.ID()
	}

	path, err := url.JoinPath(h.baseURL, req.Path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to join URL: %s: %w", req.Path, err)
	}

	query := req.Query.Encode()
	if query != "" {
		path += "?" + query
	}

	return path, headers, nil
}
