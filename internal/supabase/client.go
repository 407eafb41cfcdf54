// Package supabase talks to a hosted Supabase project through its PostgREST
// endpoint. Client satisfies the same store contracts as the SQL
// repositories, so the service layer does not care which backend it runs on.
package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
}

// New builds a client for the project at baseURL (for example
// https://xyz.supabase.co) authenticating with key. Retries stay disabled:
// failures go straight back to the caller.
func New(baseURL, key string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetTimeout(defaultTimeout).
		SetHeader("apikey", key).
		SetAuthToken(key).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &Client{http: c}
}

// Error is a non-2xx PostgREST response. Code carries the Postgres SQLSTATE
// or the PGRST error code when the body has one.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
	Hint       string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: %d: %s", e.StatusCode, e.Message)
}

func newError(resp *resty.Response) error {
	body := resp.Body()
	e := &Error{
		StatusCode: resp.StatusCode(),
		Code:       gjson.GetBytes(body, "code").String(),
		Message:    gjson.GetBytes(body, "message").String(),
		Details:    gjson.GetBytes(body, "details").String(),
		Hint:       gjson.GetBytes(body, "hint").String(),
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(resp.Status())
	}
	return e
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// do runs the request and turns HTTP failures into *Error. Transport errors
// come back untouched.
func do(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return newError(resp)
	}
	return nil
}

func eq(v string) string {
	return "eq." + v
}
