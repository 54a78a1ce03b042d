// Package remote talks to the upstream MCQ backend: question fetches, question
// creation, and account registration/login.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
)

// maxBody caps how much of an upstream response is read.
const maxBody = 8 << 20

// Paths locates the upstream endpoints relative to the base URL.
type Paths struct {
	Questions string
	Create    string
	Register  string
	Login     string
}

// Client is an HTTP client for the upstream API. It implements
// app.QuestionLoader, app.QuestionWriter and app.Authenticator.
type Client struct {
	baseURL string
	paths   Paths
	http    *http.Client
}

func NewClient(baseURL string, paths Paths, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   paths,
		http:    &http.Client{Timeout: timeout},
	}
}

// LoadQuestions posts {"category": ...} and accepts either a bare array of
// questions or an object wrapping the array under "data".
func (c *Client) LoadQuestions(ctx context.Context, category string) ([]domain.Question, error) {
	status, body, err := c.post(ctx, c.paths.Questions, map[string]string{"category": category})
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: fetch questions: status %d", domain.ErrNetworkFailure, status)
	}
	questions, err := DecodeQuestions(body)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return questions, nil
}

// DecodeQuestions parses a question response body. A JSON array is taken as
// the question list; an object must carry the list under "data". Anything
// else, or any record that is not an answerable question, is
// domain.ErrMalformedResponse.
func DecodeQuestions(body []byte) ([]domain.Question, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}

	var list []domain.Question
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
	case '{':
		var wrapped struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		data := bytes.TrimSpace(wrapped.Data)
		if len(data) == 0 || data[0] != '[' {
			return nil, fmt.Errorf("%w: missing data array", domain.ErrMalformedResponse)
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
	default:
		return nil, fmt.Errorf("%w: expected array or object", domain.ErrMalformedResponse)
	}
	if err := domain.ValidateLoaded(list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateQuestion posts an authoring payload.
func (c *Client) CreateQuestion(ctx context.Context, payload map[string]any) error {
	status, body, err := c.post(ctx, c.paths.Create, payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return upstreamError(body, "failed to create MCQ")
	}
	return nil
}

// Register forwards a signup.
func (c *Client) Register(ctx context.Context, req app.RegisterRequest) (domain.User, error) {
	status, body, err := c.post(ctx, c.paths.Register, req)
	if err != nil {
		return domain.User{}, err
	}
	if status < 200 || status > 299 {
		return domain.User{}, upstreamError(body, "registration failed, please try again")
	}
	user := domain.User{FullName: req.FullName, Email: req.Email}
	var resp struct {
		ID   string `json:"id"`
		User *struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if json.Unmarshal(body, &resp) == nil {
		user.ID = resp.ID
		if resp.User != nil && resp.User.ID != "" {
			user.ID = resp.User.ID
		}
	}
	return user, nil
}

// Login forwards credentials and returns the upstream token, if it sends one.
func (c *Client) Login(ctx context.Context, req app.LoginRequest) (app.LoginResult, error) {
	status, body, err := c.post(ctx, c.paths.Login, req)
	if err != nil {
		return app.LoginResult{}, err
	}
	if status == http.StatusUnauthorized {
		return app.LoginResult{}, domain.ErrInvalidCredentials
	}
	if status < 200 || status > 299 {
		return app.LoginResult{}, upstreamError(body, "login failed")
	}
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	return app.LoginResult{Token: resp.Token, User: domain.User{Email: req.Email}}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", domain.ErrNetworkFailure, err)
	}
	return resp.StatusCode, body, nil
}

// UpstreamError is a failed upstream call carrying the body's message.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Unwrap lets callers match failed upstream calls with domain.ErrNetworkFailure.
func (e *UpstreamError) Unwrap() error {
	return domain.ErrNetworkFailure
}

// UpstreamMessage is the message to show the end user.
func (e *UpstreamError) UpstreamMessage() string {
	return e.Message
}

func upstreamError(body []byte, fallback string) error {
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return &UpstreamError{Message: resp.Message}
	}
	return &UpstreamError{Message: fallback}
}
