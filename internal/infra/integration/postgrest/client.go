package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TokenSource yields the current user bearer, or "" when anonymous.
type TokenSource func() string

// Client issues filtered reads and row mutations against a
// PostgREST-compatible data API. All query semantics live server-side;
// this client only builds the URL grammar.
type Client struct {
	baseURL string
	anonKey string
	tokens  TokenSource
	http    *http.Client
}

func NewClient(baseURL, anonKey string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		tokens:  tokens,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Filter is one column predicate, e.g. {Column: "id", Op: "eq", Value: id}.
type Filter struct {
	Column string
	Op     string
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Op: "eq", Value: value}
}

// Query describes a read. Select defaults to "*". OrderBy is a column
// name, optionally embedded-resource qualified; Limit <= 0 means no cap.
type Query struct {
	Select     string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

func (q Query) encode() string {
	values := url.Values{}
	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	values.Set("select", sel)
	// Add, not Set: PostgREST ranges repeat the column (gte + lte).
	for _, f := range q.Filters {
		values.Add(f.Column, f.Op+"."+f.Value)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		values.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values.Encode()
}

// Select fetches rows from table into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table string, q Query, dest any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, q.encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, table)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Insert creates one row. The snapshot is re-fetched wholesale after
// every mutation, so no representation is requested back.
func (c *Client) Insert(ctx context.Context, table string, payload any) error {
	return c.write(ctx, http.MethodPost, table, nil, payload)
}

// Update patches the row with the given id.
func (c *Client) Update(ctx context.Context, table, id string, payload any) error {
	return c.write(ctx, http.MethodPatch, table, []Filter{Eq("id", id)}, payload)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	return c.write(ctx, http.MethodDelete, table, []Filter{Eq("id", id)}, nil)
}

func (c *Client) write(ctx context.Context, method, table string, filters []Filter, payload any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(filters) > 0 {
		endpoint += "?" + Query{Filters: filters}.encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", table, err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, table)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	bearer := c.anonKey
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			bearer = token
		}
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
}

func decodeError(resp *http.Response, table string) error {
	raw, _ := io.ReadAll(resp.Body)
	var apiErr errorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%s query rejected (status %d): %s", table, resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("%s query rejected (status %d)", table, resp.StatusCode)
}
