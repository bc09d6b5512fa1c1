// Package client talks to the hive-signal HTTP API. Cookies issued by the
// server are kept in a jar so a Client behaves like one browser.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

type Message struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	SessionID   string    `json:"session_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
}

// Owner returns whichever owner field the server scope filled in.
func (m Message) Owner() string {
	if m.UserID != "" {
		return m.UserID
	}
	return m.SessionID
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Health struct {
	Status  string         `json:"status"`
	Mode    string         `json:"mode"`
	Gateway string         `json:"gateway"`
	Stats   map[string]any `json:"stats"`
}

// APIError is any non 2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{baseURL: parsed, http: &http.Client{Jar: jar, Timeout: timeout}}, nil
}

// SetCookie seeds the jar, to resume a session across processes.
func (c *Client) SetCookie(name, value string) {
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

func (c *Client) Cookie(name string) (string, bool) {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return "", false
}

func (c *Client) SendMessage(ctx context.Context, phoneNumber, content string) (Message, error) {
	var message Message
	body := map[string]string{"phone_number": phoneNumber, "content": content}
	err := c.do(ctx, http.MethodPost, "/api/messages", body, &message)
	return message, err
}

func (c *Client) ListMessages(ctx context.Context) ([]Message, error) {
	messages := make([]Message, 0)
	err := c.do(ctx, http.MethodGet, "/api/messages", nil, &messages)
	return messages, err
}

func (c *Client) Register(ctx context.Context, username, password string) (User, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/current_user", nil, &envelope)
	return envelope.User, err
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var health Health
	err := c.do(ctx, http.MethodGet, "/up", nil, &health)
	return health, err
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	err := c.do(ctx, http.MethodPost, path, body, &envelope)
	return envelope.User, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= http.StatusBadRequest {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(response.Body).Decode(&failure)
		if failure.Error == "" {
			failure.Error = http.StatusText(response.StatusCode)
		}
		return &APIError{Status: response.StatusCode, Message: failure.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}
