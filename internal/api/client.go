package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"zoomdocs/internal/models"
)

const defaultTimeout = 30 * time.Second

// API is the remote ZoomDocs surface the client core depends on. Services
// take this interface so tests can substitute a mock.
type API interface {
	GenerateUser(ctx context.Context) (*IdentityResult, error)
	CheckUser(ctx context.Context, id models.Identity) (*StatusResult, error)
	StartUser(ctx context.Context, id models.Identity) (*StatusResult, error)
	GetCredits(ctx context.Context, id models.Identity) (*CreditsResult, error)
	GenerateDocument(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	FetchArtifact(ctx context.Context, kind, fileName string, id models.Identity) (*ArtifactResult, error)
	ListGeneratedDocuments(ctx context.Context, id models.Identity, records int) (*DocumentsListResult, error)
	DocumentTypes(ctx context.Context) (*DocumentTypesResult, error)
	DocumentTemplate(ctx context.Context, docType string) (*TemplateResult, error)
	HelpMeDecide(ctx context.Context, id models.Identity, situation, expectation string) (*DecideResult, error)
}

// Client talks JSON to the ZoomDocs REST API. Non-2xx responses are returned
// with their status code rather than as errors; an error means the request
// never produced a usable response (network, timeout, malformed body).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
	log        *zap.Logger
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
		log:        log,
	}
}

func (c *Client) GenerateUser(ctx context.Context) (*IdentityResult, error) {
	var out IdentityResult
	status, err := c.postJSON(ctx, "/auth/user/generate", struct{}{}, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) CheckUser(ctx context.Context, id models.Identity) (*StatusResult, error) {
	if !id.Complete() {
		return nil, fmt.Errorf("both zoomdocs_auth_id and zoomdocs_user_id are required")
	}
	var out StatusResult
	status, err := c.postJSON(ctx, "/auth/user/check", id, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) StartUser(ctx context.Context, id models.Identity) (*StatusResult, error) {
	if !id.Complete() {
		return nil, fmt.Errorf("both zoomdocs_auth_id and zoomdocs_user_id are required")
	}
	var out StatusResult
	status, err := c.postJSON(ctx, "/auth/user/start", id, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) GetCredits(ctx context.Context, id models.Identity) (*CreditsResult, error) {
	if !id.Complete() {
		return nil, fmt.Errorf("both zoomdocs_auth_id and zoomdocs_user_id are required")
	}
	var out CreditsResult
	status, err := c.postJSON(ctx, "/credits", id, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) GenerateDocument(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}
	path := "/documents/types/" + url.PathEscape(req.DocumentType) + "/generate"
	var out GenerateResult
	status, err := c.postJSON(ctx, path, req, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) FetchArtifact(ctx context.Context, kind, fileName string, id models.Identity) (*ArtifactResult, error) {
	if kind == "" || fileName == "" {
		return nil, fmt.Errorf("kind and fileName are required")
	}
	path := "/documents/generated/" + url.PathEscape(kind) + "/" + url.PathEscape(fileName)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Zoomdocs-Auth-Id", id.AuthID)
	req.Header.Set("X-Zoomdocs-User-Id", id.UserID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact %s/%s: %w", kind, fileName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read artifact body: %w", err)
	}
	c.log.Debug("api response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))
	return &ArtifactResult{Data: data, StatusCode: resp.StatusCode}, nil
}

func (c *Client) ListGeneratedDocuments(ctx context.Context, id models.Identity, records int) (*DocumentsListResult, error) {
	if !id.Complete() {
		return nil, fmt.Errorf("both zoomdocs_auth_id and zoomdocs_user_id are required")
	}
	if records <= 0 {
		records = 3
	}
	body := struct {
		AuthID  string `json:"zoomdocs_auth_id"`
		UserID  string `json:"zoomdocs_user_id"`
		Records int    `json:"records"`
	}{id.AuthID, id.UserID, records}

	var out DocumentsListResult
	status, err := c.postJSON(ctx, "/auth/generated_documents/list", body, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) DocumentTypes(ctx context.Context) (*DocumentTypesResult, error) {
	var out DocumentTypesResult
	status, err := c.getJSON(ctx, "/documents/types", &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) DocumentTemplate(ctx context.Context, docType string) (*TemplateResult, error) {
	if docType == "" {
		return nil, fmt.Errorf("document type is required")
	}
	var out TemplateResult
	status, err := c.getJSON(ctx, "/documents/types/"+url.PathEscape(docType), &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) HelpMeDecide(ctx context.Context, id models.Identity, situation, expectation string) (*DecideResult, error) {
	if !id.Complete() {
		return nil, fmt.Errorf("both zoomdocs_auth_id and zoomdocs_user_id are required")
	}
	if situation == "" || expectation == "" {
		return nil, fmt.Errorf("describe_the_situation and what_do_you_expect are required")
	}
	body := struct {
		AuthID string            `json:"zoomdocs_auth_id"`
		UserID string            `json:"zoomdocs_user_id"`
		Inputs map[string]string `json:"help_me_decide_inputs"`
	}{id.AuthID, id.UserID, map[string]string{
		"describe_the_situation": situation,
		"what_do_you_expect":     expectation,
	}}

	var out DecideResult
	status, err := c.postJSON(ctx, "/help-me-decide", body, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode request body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	return c.do(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) (int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	return c.do(req, path, out)
}

// do executes the request and decodes the body into out. On a 200 the body
// must decode cleanly; on any other status decoding is best-effort so that
// embedded error fields survive while junk bodies do not fail the call.
func (c *Client) do(req *http.Request, path string, out interface{}) (int, error) {
	c.log.Debug("api request", zap.String("method", req.Method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api transport failure", zap.String("path", path), zap.Error(err))
		return 0, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	c.log.Debug("api response", zap.String("path", path), zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response from %s: %w", path, err)
		}
		return resp.StatusCode, nil
	}

	_ = json.Unmarshal(data, out)
	return resp.StatusCode, nil
}
