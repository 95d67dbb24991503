package appsscript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/farmshop/internal/config"
)

const (
	actionRead  = "read"
	actionWrite = "write"
	statusOK    = "success"
)

// Client exposes the spreadsheet web app operations used by the application.
type Client interface {
	Read(ctx context.Context, sheet string) ([]map[string]any, error)
	Write(ctx context.Context, sheet string, rows []map[string]any) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a client for the deployed web app URL.
func NewClient(cfg config.AppsScriptConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient, url: cfg.URL}
}

// envelope is the response shape of every web app action.
type envelope struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    []map[string]any `json:"data"`
}

type writeRequest struct {
	Action string           `json:"action"`
	Sheet  string           `json:"sheet"`
	Rows   []map[string]any `json:"rows"`
}

// Read fetches every row of a sheet as header-keyed objects.
func (c *APIClient) Read(ctx context.Context, sheet string) ([]map[string]any, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"action": actionRead, "sheet": sheet}).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	body, err := decode(resp)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return body.Data, nil
}

// Write replaces the whole content of a sheet with rows.
func (c *APIClient) Write(ctx context.Context, sheet string, rows []map[string]any) error {
	if rows == nil {
		rows = []map[string]any{}
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(writeRequest{Action: actionWrite, Sheet: sheet, Rows: rows}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	if _, err := decode(resp); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}
	return nil
}

func decode(resp *resty.Response) (*envelope, error) {
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("web app http status %d", resp.StatusCode())
	}

	// The web app answers with text/plain on some deployments, so the body is
	// decoded by hand instead of through SetResult.
	body := new(envelope)
	if err := json.Unmarshal(resp.Body(), body); err != nil {
		return nil, fmt.Errorf("decode web app response: %w", err)
	}
	if body.Status != statusOK {
		return nil, fmt.Errorf("web app error: %s", body.Message)
	}
	return body, nil
}
