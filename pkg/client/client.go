// Package client 提供笔记服务的 HTTP 客户端
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTimeout 默认请求超时时间
const DefaultTimeout = 45 * time.Second

// Note 服务端返回的笔记
type Note struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Creator     *string    `json:"creator"`
	TimeCreated time.Time  `json:"time_created"`
	TimeUpdated *time.Time `json:"time_updated"`
}

// CreatorOr returns the creator, or fallback when the note has none
func (n Note) CreatorOr(fallback string) string {
	if n.Creator == nil || *n.Creator == "" {
		return fallback
	}
	return *n.Creator
}

// NoteInput 创建与更新请求体
type NoteInput struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Creator *string `json:"creator"`
}

// FieldError 字段校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int          `json:"-"`
	Detail     string       `json:"detail"`
	Errors     []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client 笔记服务客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option 客户端配置选项
type Option func(*Client)

// WithHTTPClient 使用自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout 设置请求超时时间
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New 创建客户端，baseURL 例如 http://localhost:8000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Root 获取服务问候语
func (c *Client) Root(ctx context.Context) (string, error) {
	return invokeTyped[string](ctx, c, http.MethodGet, "/", nil)
}

// List 获取全部笔记
func (c *Client) List(ctx context.Context) ([]Note, error) {
	return invokeTyped[[]Note](ctx, c, http.MethodGet, "/notes", nil)
}

// Get 获取单条笔记
func (c *Client) Get(ctx context.Context, id int64) (*Note, error) {
	n, err := invokeTyped[Note](ctx, c, http.MethodGet, fmt.Sprintf("/notes/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create 创建笔记
func (c *Client) Create(ctx context.Context, in NoteInput) (*Note, error) {
	n, err := invokeTyped[Note](ctx, c, http.MethodPost, "/notes", in)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update 更新笔记，返回服务端确认消息
func (c *Client) Update(ctx context.Context, id int64, in NoteInput) (string, error) {
	m, err := invokeTyped[messageResponse](ctx, c, http.MethodPut, fmt.Sprintf("/notes/%d", id), in)
	return m.Message, err
}

// Delete 删除笔记，返回服务端确认消息
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	m, err := invokeTyped[messageResponse](ctx, c, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil)
	return m.Message, err
}

func invokeTyped[T any](ctx context.Context, c *Client, method, path string, body any) (result T, err error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return result, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(respBody, apiErr)
		return result, apiErr
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}
