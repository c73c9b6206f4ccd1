package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/pkg/api"
)

// DefaultTimeout таймаут HTTP клиента по умолчанию
const DefaultTimeout = 30 * time.Second

// Ensure, that Client does implement DocumentStore.
var _ DocumentStore = (*Client)(nil)

var _ HealthChecker = (*Client)(nil)

// Error ошибка, которую вернул сервер (не 404 и не 409)
type Error struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option настраивает Client
type Option func(*Client)

// WithToken задаёт bearer токен для всех запросов
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient подменяет http.Client (например, httptest.Server.Client())
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout задаёт таймаут запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func documentPath(collection, id string) string {
	return "/api/v1/collections/" + url.PathEscape(collection) + "/documents/" + url.PathEscape(id)
}

// Get получает документ по коллекции и ID
func (c *Client) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	var resp api.Document
	if err := c.doRequest(ctx, http.MethodGet, documentPath(collection, id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return models.DocumentFromAPI(resp), nil
}

// Query получает документы коллекции по фильтрам равенства
func (c *Client) Query(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error) {
	path := "/api/v1/collections/" + url.PathEscape(collection) + "/documents"
	if len(filters) > 0 {
		q := url.Values{}
		for _, f := range filters {
			q.Set(f.Field, f.Value)
		}
		path += "?" + q.Encode()
	}

	var resp api.QueryResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	docs := make([]*models.Document, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		docs = append(docs, models.DocumentFromAPI(d))
	}
	return docs, nil
}

// Set записывает один документ
func (c *Client) Set(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error) {
	var resp api.Document
	req := api.SetDocumentRequest{Data: data}
	if err := c.doRequest(ctx, http.MethodPut, documentPath(collection, id), req, &resp); err != nil {
		return nil, fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return models.DocumentFromAPI(resp), nil
}

// Delete удаляет документ
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, documentPath(collection, id), nil, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// BatchCommit отправляет набор записей одним атомарным запросом
func (c *Client) BatchCommit(ctx context.Context, ops []models.WriteOp) error {
	req := api.BatchRequest{Writes: make([]api.WriteOp, 0, len(ops))}
	for _, op := range ops {
		req.Writes = append(req.Writes, models.WriteOpToAPI(op))
	}

	var resp api.BatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/batch", req, &resp); err != nil {
		return fmt.Errorf("batch commit: %w", err)
	}
	if resp.Committed != len(ops) {
		return fmt.Errorf("batch commit: server applied %d of %d writes", resp.Committed, len(ops))
	}
	return nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// statusError переводит не-2xx ответ в ошибку
// 404 и 409 оборачивают доменные sentinel ошибки
func statusError(status int, body []byte) error {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		errResp = api.ErrorResponse{Error: http.StatusText(status), Message: strings.TrimSpace(string(body))}
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", models.ErrNotFound, errResp.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", models.ErrVersionConflict, errResp.Message)
	default:
		return &Error{
			StatusCode: status,
			Code:       errResp.Error,
			Message:    errResp.Message,
		}
	}
}
