package client

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

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient implements Client over the Hack-or-Snooze JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
	newID   func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests pass the
// httptest server's client).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request; 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient validates baseURL and returns a client for it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be an absolute http(s) URL", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
		log:     logging.Discard(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type tokenBody struct {
	Token string `json:"token"`
}

type storiesResponse struct {
	Stories []models.Story `json:"stories"`
}

type storyResponse struct {
	Story models.Story `json:"story"`
}

type userResponse struct {
	User UserProfile `json:"user"`
}

type createStoryRequest struct {
	Token string            `json:"token"`
	Story models.StoryDraft `json:"story"`
}

type credentialsRequest struct {
	User struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name,omitempty"`
	} `json:"user"`
}

func (c *HTTPClient) GetStories(ctx context.Context) ([]models.Story, error) {
	var resp storiesResponse
	if err := c.do(ctx, http.MethodGet, "/stories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

func (c *HTTPClient) CreateStory(ctx context.Context, token string, draft models.StoryDraft) (models.Story, error) {
	var resp storyResponse
	req := createStoryRequest{Token: token, Story: draft}
	if err := c.do(ctx, http.MethodPost, "/stories", nil, req, &resp); err != nil {
		return models.Story{}, err
	}
	return resp.Story, nil
}

func (c *HTTPClient) DeleteStory(ctx context.Context, token string, storyID string) error {
	return c.do(ctx, http.MethodDelete, "/stories/"+url.PathEscape(storyID), nil, tokenBody{Token: token}, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, username string, password []byte, name string) (*AuthResponse, error) {
	var req credentialsRequest
	req.User.Username = username
	req.User.Password = string(password)
	req.User.Name = name

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*AuthResponse, error) {
	var req credentialsRequest
	req.User.Username = username
	req.User.Password = string(password)

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, token string, username string) (*UserProfile, error) {
	var resp userResponse
	q := url.Values{"token": {token}}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token string, username string, storyID string) error {
	return c.do(ctx, http.MethodPost, favoritePath(username, storyID), nil, tokenBody{Token: token}, nil)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token string, username string, storyID string) error {
	return c.do(ctx, http.MethodDelete, favoritePath(username, storyID), nil, tokenBody{Token: token}, nil)
}

func favoritePath(username, storyID string) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
}

// do sends one JSON request and decodes the response into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "remote call failed", "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "remote call", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(method, path string, resp *http.Response) error {
	apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Title = body.Error.Title
		apiErr.Message = body.Error.Message
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}
