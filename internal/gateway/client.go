package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for 404 responses on detail fetches.
var ErrNotFound = errors.New("resource not found")

// TotalCountHeader carries the unpaginated collection size on list responses.
const TotalCountHeader = "X-Total-Count"

// StatusError is a non-2xx gateway response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.Code, e.Body)
}

// Client talks to the persistence gateway. Responses are returned as raw JSON
// so callers control decoding (the entity stores need it for PATCH merges).
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token sent on every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListQuery is the pagination/sort/filter query of a collection GET.
type ListQuery struct {
	Page    int
	Limit   int
	Sort    string
	Order   string
	Filters url.Values
}

func (q ListQuery) encode() string {
	v := url.Values{}
	for k, vals := range q.Filters {
		for _, val := range vals {
			v.Add(k, val)
		}
	}

	if q.Page > 0 {
		v.Set("_page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("_limit", strconv.Itoa(q.Limit))
	}

	if q.Sort != "" {
		v.Set("_sort", q.Sort)
	}

	if q.Order != "" {
		v.Set("_order", q.Order)
	}

	return v.Encode()
}

// List fetches one page of a collection. The second return value is the
// X-Total-Count header; when the gateway omits it, callers fall back to the
// page length.
func (c *Client) List(ctx context.Context, collection string, q ListQuery) (json.RawMessage, int, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, collection, q.encode())

	body, header, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}

	total := -1
	if s := header.Get(TotalCountHeader); s != "" {
		if n, convErr := strconv.Atoi(s); convErr == nil {
			total = n
		}
	}

	return body, total, nil
}

func (c *Client) Get(ctx context.Context, collection string, id uuid.UUID) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, collection, id)

	body, _, err := c.do(ctx, http.MethodGet, u, nil)

	return body, err
}

func (c *Client) Post(ctx context.Context, collection string, payload any) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, collection)

	body, _, err := c.do(ctx, http.MethodPost, u, payload)

	return body, err
}

func (c *Client) Patch(ctx context.Context, collection string, id uuid.UUID, payload any) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, collection, id)

	body, _, err := c.do(ctx, http.MethodPatch, u, payload)

	return body, err
}

func (c *Client) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, collection, id)

	_, _, err := c.do(ctx, http.MethodDelete, u, nil)

	return err
}

type loginRequest struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

// Session is the gateway's answer to a successful login.
type Session struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
	Nivel   string `json:"nivel"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client. Credentials are matched by the gateway by plain equality.
func (c *Client) Login(ctx context.Context, usuario, clave string) (*Session, error) {
	u := fmt.Sprintf("%s/login", c.baseURL)

	body, _, err := c.do(ctx, http.MethodPost, u, loginRequest{Usuario: usuario, Clave: clave})
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	c.token = s.Token

	return &s, nil
}

func (c *Client) do(ctx context.Context, method, u string, payload any) (json.RawMessage, http.Header, error) {
	var reqBody io.Reader

	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding payload: %w", err)
		}

		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	return body, resp.Header, nil
}
